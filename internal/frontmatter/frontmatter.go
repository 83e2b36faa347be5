// Package frontmatter splits a leading YAML frontmatter block off a chapter so the
// Markdown body can be edited while the block is kept byte for byte.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Frontmatter is a leading `---` delimited YAML block.
type Frontmatter struct {
	// Block is the whole block, delimiters included, exactly as it appeared in the source.
	Block []byte
	// YAML is the text between the delimiters.
	YAML []byte
	// Newline is the newline sequence used by the delimiters ("\n" or "\r\n").
	Newline string
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, fm is nil and body is
// the full input. Concatenating fm.Block and body always reproduces content.
func Split(content []byte) (fm *Frontmatter, body []byte, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}

	yamlStart := len(open)
	closing := []byte("---" + nl)
	if bytes.HasPrefix(content[yamlStart:], closing) {
		bodyStart := yamlStart + len(closing)
		return &Frontmatter{Block: content[:bodyStart], YAML: []byte{}, Newline: nl}, content[bodyStart:], nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[yamlStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter at the very end of the file has no trailing newline.
		closeEOF := []byte(nl + "---")
		if !bytes.HasSuffix(content, closeEOF) || len(content) < yamlStart+len(closeEOF) {
			return nil, content, ErrMissingClosingDelimiter
		}
		yamlEnd := len(content) - len(closeEOF) + len(nl)
		return &Frontmatter{Block: content, YAML: content[yamlStart:yamlEnd], Newline: nl}, content[len(content):], nil
	}

	yamlEnd := yamlStart + idx + len(nl)
	bodyStart := yamlStart + idx + len(closeSeq)
	return &Frontmatter{Block: content[:bodyStart], YAML: content[yamlStart:yamlEnd], Newline: nl}, content[bodyStart:], nil
}

// Fields parses the YAML between the delimiters into a map.
//
// A block that is not a YAML mapping (for example a Markdown thematic break followed
// by prose) is reported as an error.
func (f *Frontmatter) Fields() (map[string]any, error) {
	return ParseYAML(f.YAML)
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
