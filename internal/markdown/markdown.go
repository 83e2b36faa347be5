package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// New returns a Goldmark instance configured for the mdbook dialect: CommonMark plus
// tables, footnotes, strikethrough and heading attributes.
//
// Task lists are left out on purpose: Goldmark takes "[x]" as a checkbox even when a
// "(" follows, which would swallow a list item's leading link. Without the extension
// "- [ ] item" still parses as plain text, and a checkbox never carries a destination.
//
// Raw HTML is never interpreted for links; Goldmark keeps it as opaque RawHTML and
// HTMLBlock nodes, so destinations inside embedded HTML are never reported.
func New(opts Options) goldmark.Markdown {
	if opts.CommonMarkOnly {
		return goldmark.New()
	}
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Footnote,
		),
		goldmark.WithParserOptions(parser.WithHeadingAttribute()),
	)
}

// parseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
//
// The returned parser context holds the link reference definitions.
func parseBody(body []byte, opts Options) (gmast.Node, parser.Context) {
	ctx := parser.NewContext()
	root := New(opts).Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	return root, ctx
}

// ExtractLinks parses a Markdown body and extracts link-like constructs together with
// the byte range of each raw destination in body.
//
// This is an analysis API; it does not attempt to re-render Markdown. Callers that
// want to change a destination build an Edit from Start and End and use ApplyEdits.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	// Goldmark reads from this copy; located ranges refer to the same offsets in body.
	source := append(make([]byte, 0, len(body)), body...)

	root, ctx := parseBody(source, opts)

	links := make([]Link, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, newLink(LinkKindAuto, source, node.URL(source)))
		case *gmast.Image:
			links = append(links, newLink(LinkKindImage, source, node.Destination))
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node whose Destination
			// is the definition's destination, so the range points at the definition.
			links = append(links, newLink(LinkKindInline, source, node.Destination))
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return strings.Compare(string(a.Label()), string(b.Label()))
	})
	for _, ref := range refs {
		links = append(links, newLink(LinkKindReferenceDefinition, source, ref.Destination()))
	}

	return links, nil
}

func newLink(kind LinkKind, source, destination []byte) Link {
	link := Link{Kind: kind, Destination: string(destination), Start: -1, End: -1}
	if start, ok := offsetIn(source, destination); ok {
		link.Start = start
		link.End = start + len(destination)
	}
	return link
}

// offsetIn reports where sub starts in source when sub is a subslice of source.
//
// Goldmark hands out destinations as slices of the source it parsed (unless a line
// needed tab padding), which is what makes a lossless rewrite possible.
func offsetIn(source, sub []byte) (int, bool) {
	if len(sub) == 0 || len(source) == 0 {
		return 0, false
	}
	start := cap(source) - cap(sub)
	if start < 0 || start+len(sub) > len(source) {
		return 0, false
	}
	if &source[start] != &sub[0] {
		return 0, false
	}
	return start, true
}
