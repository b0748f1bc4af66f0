// Package validation checks user-supplied input before it reaches storage.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	langCodeRegex = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})?$`)
)

const (
	MaxNameLength = 100
	MaxWordLength = 200
	MaxNoteLength = 500
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks a vocabulary name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// ValidateLanguage accepts an empty code or a short BCP 47 style tag ("en", "cs", "pt-BR").
func ValidateLanguage(field, code string) error {
	if code == "" {
		return nil
	}
	if !langCodeRegex.MatchString(code) {
		return ValidationError{Field: field, Message: "invalid language code"}
	}
	return nil
}

// ValidateWordPair checks one original/translation pair
func ValidateWordPair(original, translation, notes string) error {
	original = strings.TrimSpace(original)
	translation = strings.TrimSpace(translation)

	if original == "" {
		return ValidationError{Field: "original", Message: "original is required"}
	}
	if translation == "" {
		return ValidationError{Field: "translation", Message: "translation is required"}
	}
	if utf8.RuneCountInString(original) > MaxWordLength {
		return ValidationError{Field: "original", Message: fmt.Sprintf("original must be at most %d characters", MaxWordLength)}
	}
	if utf8.RuneCountInString(translation) > MaxWordLength {
		return ValidationError{Field: "translation", Message: fmt.Sprintf("translation must be at most %d characters", MaxWordLength)}
	}
	if utf8.RuneCountInString(notes) > MaxNoteLength {
		return ValidationError{Field: "notes", Message: fmt.Sprintf("notes must be at most %d characters", MaxNoteLength)}
	}
	return nil
}
