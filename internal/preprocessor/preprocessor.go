// Package preprocessor walks an mdbook book and makes every root-relative link and
// image destination relative to the chapter that contains it.
package preprocessor

import (
	"context"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/book"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/mdbook"
)

// Name is the preprocessor's name, as used for its book.toml table.
const Name = "force-relative-links"

// Preprocessor transforms a book before mdbook hands it to a renderer.
type Preprocessor interface {
	// Name identifies the preprocessor.
	Name() string
	// Run edits b in place. On error b is left unchanged.
	Run(ctx context.Context, mctx *mdbook.Context, b *book.Book) error
	// SupportsRenderer reports whether the preprocessor should run for renderer.
	SupportsRenderer(renderer string) bool
}
