package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "John Doe",
			wantErr: false,
		},
		{
			name:    "single name",
			input:   "John",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
		{
			name:    "accented two letters",
			input:   "Čj",
			wantErr: false,
		},
		{
			name:    "name too long",
			input:   strings.Repeat("a", MaxNameLength+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "empty is allowed", code: "", wantErr: false},
		{name: "two letters", code: "cs", wantErr: false},
		{name: "three letters", code: "deu", wantErr: false},
		{name: "with region", code: "pt-BR", wantErr: false},
		{name: "uppercase language", code: "EN", wantErr: true},
		{name: "full name", code: "english", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLanguage("source_lang", tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLanguage(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWordPair(t *testing.T) {
	tests := []struct {
		name        string
		original    string
		translation string
		notes       string
		wantField   string
	}{
		{
			name:        "valid pair",
			original:    "dog",
			translation: "pes",
		},
		{
			name:        "synonym list",
			original:    "big",
			translation: "velký, veliký",
			notes:       "adjective",
		},
		{
			name:        "missing original",
			original:    "  ",
			translation: "pes",
			wantField:   "original",
		},
		{
			name:      "missing translation",
			original:  "dog",
			wantField: "translation",
		},
		{
			name:        "notes too long",
			original:    "dog",
			translation: "pes",
			notes:       strings.Repeat("n", MaxNoteLength+1),
			wantField:   "notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordPair(tt.original, tt.translation, tt.notes)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateWordPair() unexpected error = %v", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateWordPair() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidateWordPair() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}
