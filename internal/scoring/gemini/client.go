package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resumescan-backend/internal/scoring"
)

const defaultModel = "gemini-2.5-flash"

// Client implements scoring.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini scoring client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Score evaluates the resume via Gemini. An empty generation maps to an
// absent result.
func (c *Client) Score(ctx context.Context, imageLocation string, instructions string) (*scoring.Response, error) {
	temp := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 2048,
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: instructions},
			{FileData: &genai.FileData{FileURI: imageLocation, MIMEType: "image/png"}},
		},
	}}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return nil, nil
	}

	text := resp.Text()
	if text == "" {
		return nil, nil
	}
	return &scoring.Response{
		Message: scoring.Message{Content: text},
	}, nil
}

var _ scoring.Client = (*Client)(nil)
