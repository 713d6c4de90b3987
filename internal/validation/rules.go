// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/aikey/vault/internal/errors"
)

var (
	// hexColorRegex matches a six-digit hex color value like #1976d2.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// HexColor validates that a string is a six-digit hex color value
var HexColor = validation.NewStringRuleWithError(
	func(s string) bool {
		return hexColorRegex.MatchString(s)
	},
	validation.NewError("validation_hex_color", "must be a hex color like #1976d2"),
)

// TrimmedLength validates the length of a string after trimming whitespace.
type TrimmedLength struct {
	Min int
	Max int
}

// Validate checks if the trimmed string length falls within the configured bounds.
func (r TrimmedLength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_trimmed_length_type", "must be a string")
	}

	length := len([]rune(strings.TrimSpace(s)))
	if length < r.Min {
		return validation.NewError(
			"validation_trimmed_length_min",
			"must be at least "+strconv.Itoa(r.Min)+" characters",
		)
	}
	if r.Max > 0 && length > r.Max {
		return validation.NewError(
			"validation_trimmed_length_max",
			"must be at most "+strconv.Itoa(r.Max)+" characters",
		)
	}
	return nil
}
