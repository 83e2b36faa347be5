package commands

import (
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/config"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/logfields"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/preprocessor"
)

// SupportsCmd implements 'supports <renderer>'. mdbook reads the answer from the exit
// status: 0 when the renderer is supported, 1 when it is not.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html"`
}

func (s *SupportsCmd) Run(g *Global, root *CLI) error {
	opts, err := config.Load(config.Sources{File: root.Config})
	if err != nil {
		return err
	}

	p := preprocessor.New(*opts)
	if !p.SupportsRenderer(s.Renderer) {
		g.Logger.Debug("Renderer not supported", logfields.Renderer(s.Renderer))
		g.exitCode = 1
	}
	return nil
}
