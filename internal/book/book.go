// Package book is a JSON-preserving view of the book mdbook hands to preprocessors.
//
// Only the chapter fields the preprocessor reads or writes are interpreted. Every other
// value (section numbers, parent names, __non_exhaustive markers, fields added by newer
// mdbook releases) is kept as decoded and written back unchanged.
package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Jeffail/gabs/v2"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// Top-level keys holding the book's items. mdbook 0.4 uses "sections", 0.5 "items".
const (
	KeySections = "sections"
	KeyItems    = "items"
)

// kindChapter is the only item kind the preprocessor looks into. Separators and part
// titles carry no Markdown.
const kindChapter = "Chapter"

// Book wraps the decoded book JSON.
type Book struct {
	root     *gabs.Container
	itemsKey string
	chapters []*Chapter
}

// Decode reads one JSON book from r. Numbers are kept as json.Number so they are
// written back exactly as they were read.
func Decode(r io.Reader) (*Book, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	root, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryProtocol, "failed to decode book JSON").Fatal().Build()
	}
	return New(root)
}

// Parse decodes a book from raw JSON.
func Parse(data []byte) (*Book, error) {
	return Decode(bytes.NewReader(data))
}

// New wraps an already decoded book and indexes its chapters.
func New(root *gabs.Container) (*Book, error) {
	if _, ok := root.Data().(map[string]any); !ok {
		return nil, ferrors.ProtocolError("book is not a JSON object").Build()
	}

	b := &Book{root: root}
	for _, key := range []string{KeySections, KeyItems} {
		if root.Exists(key) {
			b.itemsKey = key
			break
		}
	}
	if b.itemsKey == "" {
		return nil, ferrors.ProtocolError("book has neither sections nor items").Build()
	}

	chapters, err := collect(root.S(b.itemsKey), b.itemsKey, nil)
	if err != nil {
		return nil, err
	}
	b.chapters = chapters
	return b, nil
}

// Chapters returns every chapter in the book, depth first, in book order.
func (b *Book) Chapters() []*Chapter {
	return b.chapters
}

// Encode writes the book as a single JSON document to w, including any edits made
// through its chapters.
func (b *Book) Encode(w io.Writer) error {
	if _, err := w.Write(b.root.EncodeJSON()); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryProtocol, "failed to write book JSON").Fatal().Build()
	}
	return nil
}

func collect(items *gabs.Container, where string, out []*Chapter) ([]*Chapter, error) {
	if items == nil || items.Data() == nil {
		return out, nil
	}
	if _, ok := items.Data().([]any); !ok {
		return nil, ferrors.ProtocolError("book items are not an array").
			WithContext("location", where).
			Build()
	}

	for i, item := range items.Children() {
		loc := fmt.Sprintf("%s[%d]", where, i)
		switch v := item.Data().(type) {
		case string:
			// "Separator" is the only unit variant; anything else is a newer kind we pass through.
			continue
		case map[string]any:
			if _, ok := v[kindChapter]; !ok {
				continue
			}
			ch, err := newChapter(item.S(kindChapter), loc)
			if err != nil {
				return nil, err
			}
			out = append(out, ch)
			out, err = collect(ch.c.S("sub_items"), loc+".sub_items", out)
			if err != nil {
				return nil, err
			}
		default:
			return nil, ferrors.ProtocolError("unexpected book item").
				WithContext("location", loc).
				Build()
		}
	}
	return out, nil
}
