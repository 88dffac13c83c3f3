package models

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ContactMessage represents one contact form submission
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// ContactForm represents form data submitted on the contact page
type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"required,notblank"`
	Email   string `json:"email" form:"email" validate:"required,notblank,email"`
	Subject string `json:"subject" form:"subject" validate:"required,notblank"`
	Message string `json:"message" form:"message" validate:"required,notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Whitespace-only input counts as missing
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report errors under the submitted field names rather than Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate validates the contact form data. It never modifies the form, so
// values that pass are stored exactly as submitted.
func (f *ContactForm) Validate() ValidationErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "form", Code: CodeRequiredFieldMissing, Message: err.Error()}}
	}

	var errors ValidationErrors
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "email":
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Code:    CodeInvalidEmailFormat,
				Message: "Invalid email address.",
			})
		default:
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Code:    CodeRequiredFieldMissing,
				Message: "This field is required.",
			})
		}
	}

	return errors
}

// ToMessage builds an unsaved ContactMessage from a validated form
func (f *ContactForm) ToMessage() *ContactMessage {
	return &ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	}
}
