package domain

import (
	"strings"
	"testing"
)

func validInput() ApplicationInput {
	return ApplicationInput{
		CompanyName:     "Acme Corp",
		PositionTitle:   "Backend Engineer",
		ApplicationDate: "2024-01-10",
		Status:          StatusApplied,
		Location:        "Kigali",
		Source:          "LinkedIn",
	}
}

func TestValidateAccepts(t *testing.T) {
	if errs := validInput().Validate(); len(errs) != 0 {
		t.Errorf("valid input produced errors: %v", errs)
	}

	withLink := validInput()
	withLink.JobLink = "https://acme.example/careers/42"
	if errs := withLink.Validate(); len(errs) != 0 {
		t.Errorf("valid input with job link produced errors: %v", errs)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	in := ApplicationInput{}
	errs := in.Validate()
	for _, field := range []string{"CompanyName", "PositionTitle", "ApplicationDate", "Status", "Location", "Source"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for missing %s, got %v", field, errs)
		}
	}
	if _, ok := errs["JobLink"]; ok {
		t.Error("empty job link should not be an error")
	}
}

func TestValidateShortCompanyName(t *testing.T) {
	in := validInput()
	in.CompanyName = "A"
	errs := in.Validate()
	if msg := errs["CompanyName"]; !strings.Contains(msg, "at least 2") {
		t.Errorf("CompanyName error = %q, want min-length message", msg)
	}
}

func TestValidateDateFormat(t *testing.T) {
	in := validInput()
	in.ApplicationDate = "10/01/2024"
	errs := in.Validate()
	if msg := errs["ApplicationDate"]; !strings.Contains(msg, "YYYY-MM-DD") {
		t.Errorf("ApplicationDate error = %q, want format message", msg)
	}
}

func TestValidateUnknownStatus(t *testing.T) {
	in := validInput()
	in.Status = "ghosted"
	errs := in.Validate()
	if _, ok := errs["Status"]; !ok {
		t.Errorf("expected error for unknown status, got %v", errs)
	}
}

func TestValidateJobLink(t *testing.T) {
	in := validInput()
	in.JobLink = "not a url"
	if _, ok := in.Validate()["JobLink"]; !ok {
		t.Error("expected error for malformed job link")
	}

	in.JobLink = "ftp://acme.example/jobs"
	if _, ok := in.Validate()["JobLink"]; !ok {
		t.Error("expected error for non-http job link")
	}
}
