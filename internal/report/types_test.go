// File path: internal/report/types_test.go
package report

import (
	"errors"
	"testing"
)

func TestValidateRequiresCoreFields(t *testing.T) {
	student := StudentData{
		Name:             "Asha Rao",
		RollNumber:       "42",
		EnrollmentNumber: "EN2024042",
		College:          "Government Polytechnic Pune",
		Topic:            "IoT-based Smart Irrigation System",
	}
	if err := student.Validate(); err != nil {
		t.Fatalf("complete data must validate: %v", err)
	}

	missing := student
	missing.Topic = "   "
	err := missing.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "topic" {
		t.Fatalf("expected topic field, got %q", verr.Field)
	}
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	student := StudentData{
		Name:             "Asha Rao",
		RollNumber:       "42",
		EnrollmentNumber: "EN2024042",
		College:          "Government Polytechnic Pune",
		Topic:            "Topic",
	}
	if err := student.Validate(); err != nil {
		t.Fatalf("branch/semester/category are optional: %v", err)
	}
}

func TestDocumentFileName(t *testing.T) {
	student := StudentData{Topic: "IoT-based Smart Irrigation System"}
	if got := student.DocumentFileName(); got != "AI_Project_IoT-based_Smart_Irrigation_System.docx" {
		t.Fatalf("unexpected file name %q", got)
	}

	student.Topic = "  spaced   out   topic  "
	if got := student.DocumentFileName(); got != "AI_Project_spaced_out_topic.docx" {
		t.Fatalf("unexpected file name %q", got)
	}

	student.Topic = ""
	if got := student.DocumentFileName(); got != "AI_Project_Report.docx" {
		t.Fatalf("unexpected fallback file name %q", got)
	}
}
