package foundation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

type options struct {
	workers   int
	renderers []string
}

func optionsChain() *ValidatorChain[options] {
	return NewValidatorChain(
		Field(func(o options) int { return o.workers }, AtLeast("workers", 1)),
	).Add(
		Field(func(o options) []string { return o.renderers }, Each("renderers", NotBlank)),
	)
}

func TestValidatorChain(t *testing.T) {
	require.True(t, optionsChain().Validate(options{workers: 2, renderers: []string{"html"}}).Valid)

	result := optionsChain().Validate(options{workers: 0, renderers: []string{"html", " "}})
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	require.Equal(t, "workers", result.Errors[0].Field)
	require.Equal(t, "min", result.Errors[0].Code)
	require.Equal(t, "renderers[1]", result.Errors[1].Field)
	require.Equal(t, "not_blank", result.Errors[1].Code)
}

func TestValidationResult_ToError(t *testing.T) {
	require.NoError(t, Valid().ToError())

	err := Invalid(
		NewFieldError("workers", "min", "must be at least 1", 0),
		NewFieldError("", "custom", "something else", nil),
	).ToError()
	require.Error(t, err)
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, "field 'workers': must be at least 1; something else", classified.Message())
	require.Equal(t, errors.CategoryValidation, classified.Category())
	require.Equal(t, 0, classified.Context()["workers"])
}

func TestCombine(t *testing.T) {
	require.True(t, Valid().Combine(Valid()).Valid)
	combined := Valid().Combine(Invalid(NewFieldError("a", "x", "bad", nil)))
	require.False(t, combined.Valid)
	require.Len(t, combined.Errors, 1)
}
