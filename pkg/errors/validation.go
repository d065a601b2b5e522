package errors

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates a file path given on the command line or in a
// script. Absolute paths are allowed; control characters are not.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// designatorRegex matches component designators such as R1, U12 or J_PWR.
var designatorRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// pinNameRegex matches pin names such as 1, A3, VCC or ~RESET.
var pinNameRegex = regexp.MustCompile(`^[A-Za-z0-9~+_-]+$`)

// ValidatePin validates a component/pin pair. Neither part may be empty or
// contain dots, which separate them in the printed form.
func ValidatePin(component, pin string) error {
	if component == "" || pin == "" {
		return New(ErrCodeInvalidPin, "pin reference needs both component and pin")
	}
	if len(component) > 64 || len(pin) > 64 {
		return New(ErrCodeInvalidPin, "pin reference too long (max 64 characters per part)")
	}
	if !designatorRegex.MatchString(component) {
		return New(ErrCodeInvalidPin, "invalid component designator: %q", component)
	}
	if !pinNameRegex.MatchString(pin) {
		return New(ErrCodeInvalidPin, "invalid pin name: %q", pin)
	}
	return nil
}

// layerRegex matches routing layer names such as top, bottom, In1.Cu.
var layerRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidateLayer validates a routing layer name. The empty name means "no
// layer" and is accepted.
func ValidateLayer(layer string) error {
	if layer == "" {
		return nil
	}
	if !layerRegex.MatchString(layer) {
		return New(ErrCodeInvalidLayer, "invalid layer name: %q", layer)
	}
	return nil
}

// ValidateFormat checks that format is one of the supported names, compared
// case-insensitively.
func ValidateFormat(format string, supported ...string) error {
	if slices.Contains(supported, strings.ToLower(format)) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(supported, ", "))
}
