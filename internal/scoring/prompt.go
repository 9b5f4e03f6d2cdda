package scoring

import (
	_ "embed"
	"strings"
)

//go:embed prompts/feedback.txt
var feedbackPrompt string

// BuildInstructions fills the evaluation prompt with the job context and,
// when available, the extracted resume text.
func BuildInstructions(jobTitle, jobDescription, resumeText string) string {
	out := strings.NewReplacer(
		"{{jobTitle}}", jobTitle,
		"{{jobDescription}}", jobDescription,
	).Replace(feedbackPrompt)

	if strings.TrimSpace(resumeText) != "" {
		out += "\n\nExtracted resume text for reference:\n" + resumeText
	}
	return out
}
