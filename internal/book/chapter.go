package book

import (
	"github.com/Jeffail/gabs/v2"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// Chapter is a handle on one chapter object inside the book JSON. SetContent edits
// the book in place.
//
// Distinct chapters may be edited from different goroutines.
type Chapter struct {
	c        *gabs.Container
	location string
}

func newChapter(c *gabs.Container, location string) (*Chapter, error) {
	obj, ok := c.Data().(map[string]any)
	if !ok {
		return nil, ferrors.ProtocolError("chapter is not a JSON object").
			WithContext("location", location).
			Build()
	}
	if _, ok := obj["content"].(string); !ok {
		return nil, ferrors.ProtocolError("chapter content is not a string").
			WithContext("location", location).
			Build()
	}
	return &Chapter{c: c, location: location}, nil
}

// Name returns the chapter title.
func (ch *Chapter) Name() string {
	s, _ := ch.c.S("name").Data().(string)
	return s
}

// Path returns the chapter's source path relative to the book's src directory.
// Draft chapters have no path.
func (ch *Chapter) Path() (string, bool) {
	s, ok := ch.c.S("path").Data().(string)
	return s, ok
}

// SourcePath returns the path of the file the chapter was loaded from, when known.
func (ch *Chapter) SourcePath() (string, bool) {
	s, ok := ch.c.S("source_path").Data().(string)
	return s, ok
}

// Content returns the chapter's Markdown.
func (ch *Chapter) Content() string {
	s, _ := ch.c.S("content").Data().(string)
	return s
}

// SetContent replaces the chapter's Markdown.
func (ch *Chapter) SetContent(content string) {
	ch.c.Data().(map[string]any)["content"] = content
}

// Location identifies the chapter inside the book JSON, for diagnostics.
func (ch *Chapter) Location() string {
	return ch.location
}
