// Package linkrewrite turns root-relative link and image destinations in a Markdown
// chapter into destinations relative to the chapter's own directory.
//
// Only the bytes of each rewritten destination change; every other byte of the
// chapter is copied through unchanged.
package linkrewrite

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/util"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/frontmatter"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/markdown"
)

// Options configures a Rewriter.
type Options struct {
	Markdown markdown.Options
	// Frontmatter leaves a leading YAML frontmatter block untouched and rewrites only
	// the Markdown after it.
	Frontmatter bool
}

// Result is the outcome of rewriting one chapter.
type Result struct {
	Content string
	// Rewritten is the number of distinct destinations that were changed.
	Rewritten int
}

// Changed reports whether any destination was rewritten.
func (r Result) Changed() bool { return r.Rewritten > 0 }

// Rewriter rewrites root-relative destinations using a fixed Markdown dialect.
type Rewriter struct {
	opts Options
}

// New creates a Rewriter.
func New(opts Options) *Rewriter {
	return &Rewriter{opts: opts}
}

var defaultRewriter = New(Options{})

// Rewrite rewrites content with the default dialect and no frontmatter handling.
func Rewrite(content, prefix string) (string, error) {
	res, err := defaultRewriter.Rewrite(content, prefix)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// Rewrite replaces every root-relative destination in content with prefix followed by
// the destination without its leading separators.
//
// Links, images and link reference definitions are rewritten; autolinks, code and raw
// HTML are not. Running Rewrite on its own output with the same prefix changes nothing.
func (r *Rewriter) Rewrite(content, prefix string) (Result, error) {
	src := []byte(content)

	var head []byte
	body := src
	if r.opts.Frontmatter {
		head, body = splitFrontmatter(src)
	}

	links, err := markdown.ExtractLinks(body, r.opts.Markdown)
	if err != nil {
		return Result{}, ferrors.MarkdownError("failed to parse chapter").
			WithCause(err).
			Build()
	}

	seen := make(map[int]struct{}, len(links))
	edits := make([]markdown.Edit, 0)
	for _, link := range links {
		if link.Kind == markdown.LinkKindAuto {
			continue
		}
		n := leadingSeparators([]byte(link.Destination))
		if n == 0 {
			continue
		}
		if !link.Located() {
			return Result{}, ferrors.InternalError("cannot locate link destination in chapter source").
				WithContext("destination", link.Destination).
				WithContext("kind", string(link.Kind)).
				Build()
		}
		// A reference-style link and its definition share the same destination bytes.
		if _, dup := seen[link.Start]; dup {
			continue
		}
		seen[link.Start] = struct{}{}

		edits = append(edits, markdown.Edit{
			Start:       link.Start,
			End:         link.Start + n,
			Replacement: replacement(body, link, n, prefix),
		})
	}

	if len(edits) == 0 {
		return Result{Content: content}, nil
	}

	out, err := markdown.ApplyEdits(body, edits)
	if err != nil {
		return Result{}, ferrors.InternalError("failed to serialize rewritten chapter").
			WithCause(err).
			WithContext("edits", len(edits)).
			Build()
	}

	var sb strings.Builder
	sb.Grow(len(head) + len(out))
	sb.Write(head)
	sb.Write(out)
	return Result{Content: sb.String(), Rewritten: len(edits)}, nil
}

// replacement builds the bytes that replace the n leading separator bytes of link.
func replacement(body []byte, link markdown.Link, n int, prefix string) []byte {
	if prefix != "" || link.End > link.Start+n {
		return []byte(prefix)
	}
	// The destination would become empty. A bare empty destination is not a
	// destination at all, so it has to be written as <>.
	if link.Start > 0 && body[link.Start-1] == '<' {
		return nil
	}
	return []byte("<>")
}

// splitFrontmatter returns the frontmatter block (possibly nil) and the Markdown body.
// A leading --- block that is not a YAML mapping is treated as Markdown.
func splitFrontmatter(src []byte) (head, body []byte) {
	fm, rest, err := frontmatter.Split(src)
	if err != nil || fm == nil {
		return nil, src
	}
	if _, err := fm.Fields(); err != nil {
		return nil, src
	}
	return fm.Block, rest
}

// leadingSeparators returns the length of the run of raw bytes at the start of dest
// that decode to '/'. Besides a literal slash this covers a backslash escaped slash
// and character references such as &#47; or &sol;.
func leadingSeparators(dest []byte) int {
	i := 0
	for i < len(dest) {
		n := separatorAt(dest[i:])
		if n == 0 {
			break
		}
		i += n
	}
	return i
}

// maxReferenceLen bounds the length of a character reference token, "&#x0002F;" included.
const maxReferenceLen = 12

func separatorAt(b []byte) int {
	switch b[0] {
	case '/':
		return 1
	case '\\':
		if len(b) > 1 && b[1] == '/' {
			return 2
		}
	case '&':
		end := bytes.IndexByte(b[:min(len(b), maxReferenceLen)], ';')
		if end < 0 {
			return 0
		}
		token := b[:end+1]
		decoded := util.ResolveEntityNames(util.ResolveNumericReferences(token))
		if string(decoded) == "/" {
			return len(token)
		}
	}
	return 0
}
