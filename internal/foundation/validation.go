// Package foundation holds small building blocks shared across packages.
package foundation

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string
	Code    string
	Message string
	Value   any
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("field '%s': %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: errs,
	}
}

// NewFieldError creates a field validation failure.
func NewFieldError(field, code, message string, value any) FieldError {
	return FieldError{
		Field:   field,
		Code:    code,
		Message: message,
		Value:   value,
	}
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}

	var allErrors []FieldError
	allErrors = append(allErrors, vr.Errors...)
	allErrors = append(allErrors, other.Errors...)

	return Invalid(allErrors...)
}

// ToError converts a validation result to a CategoryValidation error if invalid.
// Each failing field is recorded in the error context under its field name.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	fields := make(errors.ErrorContext, len(vr.Errors))
	for _, fe := range vr.Errors {
		messages = append(messages, fe.Error())
		if fe.Field != "" {
			fields = fields.Set(fe.Field, fe.Value)
		}
	}
	return errors.ValidationError(strings.Join(messages, "; ")).
		WithContextMap(fields).
		Build()
}

// ValidatorChain allows chaining multiple validators.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain.
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()

	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}

	return result
}

// AtLeast validates that an integer is not below minimum.
func AtLeast(field string, minimum int) Validator[int] {
	return func(value int) ValidationResult {
		if value < minimum {
			return Invalid(NewFieldError(field, "min", fmt.Sprintf("must be at least %d", minimum), value))
		}
		return Valid()
	}
}

// NotBlank validates that a string has non-whitespace content.
func NotBlank(field string) Validator[string] {
	return func(value string) ValidationResult {
		if strings.TrimSpace(value) == "" {
			return Invalid(NewFieldError(field, "not_blank", "must not be empty", value))
		}
		return Valid()
	}
}

// Each applies validator to every element of a slice, naming failures field[i].
func Each[T any](field string, validator func(field string) Validator[T]) Validator[[]T] {
	return func(values []T) ValidationResult {
		result := Valid()
		for i, v := range values {
			result = result.Combine(validator(fmt.Sprintf("%s[%d]", field, i))(v))
		}
		return result
	}
}

// Field adapts a validator of a single field to a validator of its parent value.
func Field[P, T any](get func(P) T, validator Validator[T]) Validator[P] {
	return func(parent P) ValidationResult {
		return validator(get(parent))
	}
}
