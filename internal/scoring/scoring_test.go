package scoring

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestContentTextNormalizesShapes(t *testing.T) {
	want := `{"overallScore": 80}`

	asString := &Response{Message: Message{Content: want}}
	asParts := &Response{Message: Message{Content: []ContentPart{{Text: want}}}}
	asDecoded := &Response{Message: Message{Content: []any{map[string]any{"text": want}}}}

	for name, resp := range map[string]*Response{
		"string":  asString,
		"parts":   asParts,
		"decoded": asDecoded,
	} {
		if got := ContentText(resp); got != want {
			t.Errorf("%s content: got %q, want %q", name, got, want)
		}
	}
}

func TestContentTextEdgeShapes(t *testing.T) {
	if got := ContentText(nil); got != "" {
		t.Errorf("nil response: got %q", got)
	}
	if got := ContentText(&Response{Message: Message{Content: []ContentPart{}}}); got != "" {
		t.Errorf("empty parts: got %q", got)
	}
	if got := ContentText(&Response{Message: Message{Content: 42}}); got != "" {
		t.Errorf("numeric content: got %q", got)
	}
}

func TestParseFeedbackStructured(t *testing.T) {
	got := ParseFeedback(`{"overallScore": 82, "ATS": {"score": 75, "tips": []}}`)
	if got["overallScore"] != float64(82) {
		t.Fatalf("overallScore = %v", got["overallScore"])
	}
	ats, ok := got["ATS"].(map[string]any)
	if !ok || ats["score"] != float64(75) {
		t.Fatalf("ATS section missing or wrong: %#v", got["ATS"])
	}
}

func TestParseFeedbackMalformedWrapsText(t *testing.T) {
	got := ParseFeedback("not json")
	want := map[string]any{"text": "not json"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	// A JSON null is also not a usable payload.
	got = ParseFeedback("null")
	if got["text"] != "null" {
		t.Fatalf("expected null payload wrapped, got %#v", got)
	}
}

func TestBuildInstructions(t *testing.T) {
	out := BuildInstructions("Engineer", "Build Go services", "")
	if !strings.Contains(out, "Engineer") || !strings.Contains(out, "Build Go services") {
		t.Fatalf("instructions missing job context:\n%s", out)
	}
	if strings.Contains(out, "{{jobTitle}}") || strings.Contains(out, "{{jobDescription}}") {
		t.Fatalf("placeholders left unfilled:\n%s", out)
	}

	withText := BuildInstructions("Engineer", "Build Go services", "ten years of Go")
	if !strings.Contains(withText, "ten years of Go") {
		t.Fatalf("extracted resume text not appended:\n%s", withText)
	}
}

func TestMockClientIsDeterministic(t *testing.T) {
	client := &MockClient{}
	ctx := context.Background()

	first, err := client.Score(ctx, "img-1.png", "instructions")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	second, err := client.Score(ctx, "img-1.png", "instructions")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if ContentText(first) != ContentText(second) {
		t.Fatalf("same input produced different payloads")
	}

	other, err := client.Score(ctx, "img-2.png", "instructions")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if ContentText(first) == ContentText(other) {
		t.Fatalf("different inputs produced identical payloads")
	}
}

func TestMockClientPayloadShape(t *testing.T) {
	client := &MockClient{}
	resp, err := client.Score(context.Background(), "img.png", "instructions")
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	feedback := ParseFeedback(ContentText(resp))
	if _, fellBack := feedback["text"]; fellBack {
		t.Fatalf("mock payload is not structured JSON: %#v", feedback)
	}

	for _, field := range []string{"overallScore", "ATSScore"} {
		score, ok := feedback[field].(float64)
		if !ok || score < 0 || score > 100 {
			t.Fatalf("%s out of range: %v", field, feedback[field])
		}
	}
	for _, section := range []string{"toneAndStyle", "content", "structure", "skills"} {
		body, ok := feedback[section].(map[string]any)
		if !ok {
			t.Fatalf("missing section %q: %#v", section, feedback)
		}
		s, ok := body["score"].(float64)
		if !ok || s < 0 || s > 100 {
			t.Fatalf("section %q score out of range: %v", section, body["score"])
		}
	}
}
