package errors

import (
	"testing"
)

func TestValidateScreenID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "welcome_screen", false},
		{"valid with dash", "radio-main", false},
		{"valid with dot", "nav.route", false},
		{"valid numeric suffix", "screen_42", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScreenID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScreenID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTransitionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid generated", "t_0a1b2c3d", false},
		{"valid legacy", "transition-12", false},
		{"valid dotted", "nav.12", false},

		{"empty", "", true},
		{"leading underscore", "_t1", true},
		{"slash", "t/1", true},
		{"space", "t 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransitionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransitionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "images/welcome.png", false},
		{"valid nested", "assets/screens/radio_main.png", false},
		{"valid rooted", "/mock-screens/welcome_screen.svg", false},

		{"empty", "", true},
		{"protocol relative", "//evil.example/x.png", true},
		{"traversal", "images/../../secret.png", true},
		{"backslash", "images\\welcome.png", true},
		{"null byte", "images/a\x00.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", false},
		{"valid https", "https://example.com/graph", false},

		{"empty", "", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWeight(t *testing.T) {
	if err := ValidateWeight(1); err != nil {
		t.Errorf("ValidateWeight(1) = %v, want nil", err)
	}
	if err := ValidateWeight(0); err == nil {
		t.Error("ValidateWeight(0) = nil, want error")
	}
	if !Is(ValidateWeight(-3), ErrCodeInvalidTransition) {
		t.Error("ValidateWeight(-3) should carry INVALID_TRANSITION")
	}
}
