// File path: internal/report/types.go
package report

import (
	"fmt"
	"strings"
)

// StudentData carries the details printed on the cover page and embedded in
// generation prompts. It is immutable input: the pipeline never mutates it.
type StudentData struct {
	Name             string `json:"name"`
	RollNumber       string `json:"rollNumber"`
	EnrollmentNumber string `json:"enrollmentNumber"`
	College          string `json:"college"`
	Topic            string `json:"topic"`
	Branch           string `json:"branch,omitempty"`
	Semester         string `json:"semester,omitempty"`
	Category         string `json:"category,omitempty"`
	Complexity       string `json:"complexity,omitempty"`
}

// ValidationError reports a missing or malformed required field. It is
// always raised before any network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Validate checks the required student fields.
func (s StudentData) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"rollNumber", s.RollNumber},
		{"enrollmentNumber", s.EnrollmentNumber},
		{"college", s.College},
		{"topic", s.Topic},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return &ValidationError{Field: field.name}
		}
	}
	return nil
}

// DocumentFileName derives the download name for the assembled report:
// the topic with whitespace replaced by underscores.
func (s StudentData) DocumentFileName() string {
	topic := strings.Join(strings.Fields(strings.TrimSpace(s.Topic)), "_")
	if topic == "" {
		topic = "Report"
	}
	return fmt.Sprintf("AI_Project_%s.docx", topic)
}
