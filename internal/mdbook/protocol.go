// Package mdbook implements the preprocessor side of mdbook's stdin/stdout protocol.
//
// mdbook runs a preprocessor once per renderer. It writes a JSON array
// [context, book] to the preprocessor's stdin and reads the processed book back from
// its stdout. Before that it may call "<preprocessor> supports <renderer>" and use the
// exit status to decide whether to run it at all.
package mdbook

import (
	"encoding/json"
	"io"

	"github.com/Jeffail/gabs/v2"

	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/book"
	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// Context is the preprocessor context mdbook sends alongside the book.
type Context struct {
	// Root is the book's root directory, the one containing book.toml.
	Root string `json:"root"`
	// Config is book.toml as JSON.
	Config map[string]any `json:"config"`
	// Renderer is the name of the renderer this run feeds.
	Renderer string `json:"renderer"`
	// MDBookVersion is the version of the mdbook binary that started the preprocessor.
	MDBookVersion string `json:"mdbook_version"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table of book.toml, or nil
// when the book has none.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	if c == nil {
		return nil
	}
	tables, _ := c.Config["preprocessor"].(map[string]any)
	table, _ := tables[name].(map[string]any)
	return table
}

// ParseInput reads the [context, book] pair mdbook writes to a preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *book.Book, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	input, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryProtocol, "unable to parse preprocessor input").
			Fatal().
			Build()
	}

	pair, ok := input.Data().([]any)
	if !ok || len(pair) != 2 {
		return nil, nil, ferrors.ProtocolError("preprocessor input must be a [context, book] array").Build()
	}

	var ctx Context
	if err := json.Unmarshal(input.Index(0).Bytes(), &ctx); err != nil {
		return nil, nil, ferrors.WrapError(err, ferrors.CategoryProtocol, "invalid preprocessor context").
			Fatal().
			Build()
	}
	if ctx.MDBookVersion == "" {
		return nil, nil, ferrors.ProtocolError("preprocessor context has no mdbook_version").Build()
	}

	b, err := book.New(input.Index(1))
	if err != nil {
		return nil, nil, err
	}
	return &ctx, b, nil
}

// WriteOutput writes the processed book for mdbook to read back.
func WriteOutput(w io.Writer, b *book.Book) error {
	return b.Encode(w)
}
