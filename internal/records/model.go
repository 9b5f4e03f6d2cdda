package records

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle state of a persisted record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// EvaluationRecord is the persisted unit of one pipeline run.
//
// Feedback starts empty and is overwritten exactly once after scoring
// succeeds. Status distinguishes an in-flight record from an abandoned one,
// since the same key is written both before and after scoring.
type EvaluationRecord struct {
	ID             string         `json:"id"`
	ResumeLocation string         `json:"resumeLocation"`
	ImageLocation  string         `json:"imageLocation"`
	CompanyName    string         `json:"companyName"`
	JobTitle       string         `json:"jobTitle"`
	JobDescription string         `json:"jobDescription"`
	Status         Status         `json:"status"`
	Feedback       map[string]any `json:"feedback,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Key returns the persistence key for a record identifier.
func Key(id string) string {
	return "record:" + id
}

// Encode produces the wire-stable textual form stored in the KV service.
func Encode(rec EvaluationRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record id=%s: %w", rec.ID, err)
	}
	return string(data), nil
}

// Decode parses the textual form back into a record.
func Decode(raw string) (EvaluationRecord, error) {
	var rec EvaluationRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return EvaluationRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}
