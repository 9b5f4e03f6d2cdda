package scoring

import (
	"context"
	"encoding/json"
)

// Client abstracts the scoring service. A nil response with a nil error
// means the service produced no result.
type Client interface {
	Score(ctx context.Context, imageLocation string, instructions string) (*Response, error)
}

// Response mirrors the scoring service wire shape.
type Response struct {
	Message Message `json:"message"`
}

// Message carries the evaluation payload. Content is either a plain string
// or a sequence whose elements carry a text field.
type Message struct {
	Content any `json:"content"`
}

// ContentPart is one element of a sequence-shaped message content.
type ContentPart struct {
	Text string `json:"text"`
}

// ContentText normalizes message content to a single text value. String
// content is returned as-is; sequence content yields the first element's
// text. Unrecognized shapes normalize to the empty string.
func ContentText(resp *Response) string {
	if resp == nil {
		return ""
	}
	switch content := resp.Message.Content.(type) {
	case string:
		return content
	case []ContentPart:
		if len(content) > 0 {
			return content[0].Text
		}
	case []any:
		if len(content) == 0 {
			return ""
		}
		switch part := content[0].(type) {
		case ContentPart:
			return part.Text
		case map[string]any:
			if text, ok := part["text"].(string); ok {
				return text
			}
		}
	}
	return ""
}

// ParseFeedback attempts a structured decode of the payload text. A
// malformed body is recoverable: the raw text is wrapped in a single
// "text" field instead.
func ParseFeedback(text string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && parsed != nil {
		return parsed
	}
	return map[string]any{"text": text}
}
