package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "designs/board.json", false},
		{"absolute", "/tmp/board.toml", false},
		{"dotted", "../shared/power.yaml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePin(t *testing.T) {
	tests := []struct {
		name      string
		component string
		pin       string
		wantErr   bool
	}{
		{"numeric pin", "R1", "2", false},
		{"named pin", "U12", "VCC", false},
		{"active low", "U3", "~RESET", false},
		{"underscore designator", "J_PWR", "1", false},

		{"empty component", "", "1", true},
		{"empty pin", "R1", "", true},
		{"dot in component", "R.1", "1", true},
		{"dot in pin", "R1", "1.2", true},
		{"leading digit", "1R", "1", true},
		{"space", "R1", "A 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePin(tt.component, tt.pin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePin(%q, %q) error = %v, wantErr %v", tt.component, tt.pin, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPin) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPin)
			}
		})
	}
}

func TestValidateLayer(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"top", false},
		{"In1.Cu", false},
		{"1top", true},
		{"top layer", true},
	}

	for _, tt := range tests {
		if err := ValidateLayer(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("SVG", "svg", "dot", "json"); err != nil {
		t.Errorf("ValidateFormat(SVG) = %v, want nil", err)
	}
	err := ValidateFormat("png", "svg", "dot")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(png) = %v, want %v", err, ErrCodeInvalidFormat)
	}
}
