package models

import (
	"html/template"
	"strings"
	"time"
)

// Flash message severities, matching the CSS classes used by the layout
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// FlashMessage represents a one-shot message for user feedback
type FlashMessage struct {
	Type    string `json:"type"` // "success", "warning", "danger", "info"
	Message string `json:"message"`
}

// PageData represents common data passed to templates
type PageData struct {
	Title       string         `json:"title"`
	CurrentPage string         `json:"current_page"`
	Flashes     []FlashMessage `json:"flashes,omitempty"`
	LoggedIn    bool           `json:"logged_in"`
	CSRFField   template.HTML  `json:"-"`
	Data        interface{}    `json:"data,omitempty"`
}

// FormatDateTime formats a time as YYYY-MM-DD HH:MM in UTC
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// Validation error codes
const (
	CodeRequiredFieldMissing = "RequiredFieldMissing"
	CodeInvalidEmailFormat   = "InvalidEmailFormat"
)

// ValidationError represents a validation error on a single form field
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// GetMessages returns all error messages as a slice of strings
func (ve ValidationErrors) GetMessages() []string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

// ForField returns the error for the named field, if any
func (ve ValidationErrors) ForField(field string) *ValidationError {
	for i := range ve {
		if ve[i].Field == field {
			return &ve[i]
		}
	}
	return nil
}

// Error implements the error interface so validation failures can travel
// through service return values.
func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Field + ": " + err.Message
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
