package scoring

import (
	"context"
	"encoding/json"
	"hash/fnv"
)

// MockClient is a deterministic drop-in replacement for the live scoring
// service. Scores are derived from the inputs, so the same resume and job
// context always produce the same payload.
type MockClient struct{}

// Score returns a fixed-shape evaluation payload as string content,
// matching the live service's downstream shape exactly.
func (MockClient) Score(ctx context.Context, imageLocation string, instructions string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := fnv.New64a()
	h.Write([]byte(imageLocation))
	h.Write([]byte(instructions))
	seed := h.Sum64()

	payload := map[string]any{
		"overallScore": 70 + int(seed%20),
		"ATSScore":     70 + int((seed>>8)%20),
		"toneAndStyle": map[string]any{"score": 40 + int((seed>>16)%10)},
		"content":      map[string]any{"score": 60 + int((seed>>24)%10)},
		"structure":    map[string]any{"score": 50 + int((seed>>32)%10)},
		"skills":       map[string]any{"score": 70 + int((seed>>40)%10)},
	}

	text, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Response{Message: Message{Content: string(text)}}, nil
}

var _ Client = MockClient{}
