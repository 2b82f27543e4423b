package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
)

const maxNameLength = 100

type PlayerValidator struct{}

func NewPlayerValidator() *PlayerValidator {
	return &PlayerValidator{}
}

// Name checks a trimmed first name, last name or nationality.
func (v *PlayerValidator) Name(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return internal_errors.NewValidationError(internal_errors.InvalidField, fmt.Sprintf("%s must not be empty", field))
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return internal_errors.NewValidationError(internal_errors.InvalidField, fmt.Sprintf("%s is too long", field))
	}
	return nil
}

func (v *PlayerValidator) Age(age int) error {
	if age < domain.MinPlayerAge || age > domain.MaxPlayerAge {
		return internal_errors.NewValidationError(internal_errors.InvalidField,
			fmt.Sprintf("age must be between %d and %d", domain.MinPlayerAge, domain.MaxPlayerAge))
	}
	return nil
}
