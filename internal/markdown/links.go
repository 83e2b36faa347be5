package markdown

// Options controls the Markdown dialect used for parsing.
type Options struct {
	// CommonMarkOnly disables the mdbook extensions.
	CommonMarkOnly bool
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown body.
//
// Destination is the raw source text (escapes and entities not decoded). Start and
// End are the byte range of that text in the parsed body, End exclusive; both are -1
// when the destination could not be located (empty destinations, mailto autolinks).
type Link struct {
	Kind        LinkKind
	Destination string
	Start       int
	End         int
}

// Located reports whether the raw destination has a known byte range.
func (l Link) Located() bool {
	return l.Start >= 0 && l.End >= l.Start
}
