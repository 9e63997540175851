package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ApplicationInput is the client-writable payload for creating or
// updating an application. Server-assigned fields are absent. UserID is
// stamped by the data layer, never entered in a form, so it carries no
// validation rule.
type ApplicationInput struct {
	UserID          string `json:"userId,omitempty" validate:"-"`
	CompanyName     string `json:"companyName" validate:"required,min=2"`
	PositionTitle   string `json:"positionTitle" validate:"required,min=2"`
	ApplicationDate string `json:"applicationDate" validate:"required,datetime=2006-01-02"`
	Status          Status `json:"status" validate:"required,application_status"`
	Location        string `json:"location" validate:"required"`
	Source          string `json:"source" validate:"required"`
	JobLink         string `json:"jobLink,omitempty" validate:"omitempty,url,startswith=http"`
	Description     string `json:"description,omitempty"`
	Stacks          string `json:"stacks,omitempty"`
	Notes           string `json:"notes,omitempty"`
	NextStep        string `json:"nextStep,omitempty"`
	ResumeVersion   string `json:"resumeVersion,omitempty"`
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool { //nolint:errcheck // tag name is static
		return ValidStatus(Status(fl.Field().String()))
	})
	return v
}()

// fieldMessages maps field+tag to the inline messages shown in the form.
var fieldMessages = map[string]string{
	"CompanyName.required":       "Company name is required",
	"CompanyName.min":            "Company name must be at least 2 characters",
	"PositionTitle.required":     "Position title is required",
	"PositionTitle.min":          "Position title must be at least 2 characters",
	"ApplicationDate.required":   "Application date is required",
	"ApplicationDate.datetime":   "Application date must be YYYY-MM-DD",
	"Status.required":            "Status is required",
	"Status.application_status":  "Unknown status",
	"Location.required":          "Location is required",
	"Source.required":            "Source is required",
	"JobLink.url":                "Please enter a valid URL starting with http:// or https://",
	"JobLink.startswith":         "Please enter a valid URL starting with http:// or https://",
}

// Validate checks the input against the form rules and returns one
// message per failing field, keyed by the struct field name. An empty
// map means the input is valid.
func (in ApplicationInput) Validate() map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			out[fe.Field()] = msg
		} else {
			out[fe.Field()] = "Invalid value"
		}
	}
	return out
}
