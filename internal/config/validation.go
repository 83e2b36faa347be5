package config

import (
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation"
)

var optionsValidator = foundation.NewValidatorChain(
	foundation.Field(func(o Options) int { return o.Workers }, foundation.AtLeast("workers", 1)),
	foundation.Field(func(o Options) []string { return o.Renderers }, foundation.Each("renderers", foundation.NotBlank)),
)

// Validate checks that the options describe a runnable configuration.
func (o *Options) Validate() error {
	return optionsValidator.Validate(*o).ToError()
}
