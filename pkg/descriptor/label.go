package descriptor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLabel is returned when a label does not match `[A-Za-z0-9]+`.
var ErrInvalidLabel = errors.New("descriptor: invalid label")

// LabelMessage is the field-level message surfaced next to an invalid label.
const LabelMessage = "Label must only use characters and numbers"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func labelValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidLabel reports whether label is a non-empty ASCII alphanumeric string.
func ValidLabel(label string) bool {
	return labelValidator().Var(label, "required,alphanum") == nil
}

// ValidateLabel returns ErrInvalidLabel wrapped with the offending label.
func ValidateLabel(label string) error {
	if ValidLabel(label) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
}
