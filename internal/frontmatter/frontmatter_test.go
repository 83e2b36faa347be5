package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.Nil(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.NotNil(t, fm)
	require.Equal(t, []byte("key: value\n"), fm.YAML)
	require.Equal(t, []byte("---\nkey: value\n---\n"), fm.Block)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	fm, body, err := Split(input)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
	require.Nil(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, "\r\n", fm.Newline)
	require.Equal(t, []byte("key: value\r\n"), fm.YAML)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsWithEmptyYAML(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.NotNil(t, fm)
	require.Empty(t, fm.YAML)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	input := []byte("---\nkey: value\n---")

	fm, body, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, []byte("key: value\n"), fm.YAML)
	require.Empty(t, body)
}

func TestSplit_RoundTrip_ReconstructsOriginalBytes(t *testing.T) {
	cases := [][]byte{
		[]byte("# Title\n\nHello\n"),
		[]byte("---\nkey: value\n---\n# Title\n"),
		[]byte("---\n---\n# Title\n"),
		[]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"),
		[]byte("---\nkey: value\n---"),
	}

	for _, input := range cases {
		fm, body, err := Split(input)
		require.NoError(t, err)

		var out []byte
		if fm != nil {
			out = append(out, fm.Block...)
		}
		out = append(out, body...)
		require.Equal(t, input, out)
	}
}

func TestFields_ThematicBreakIsNotAMapping(t *testing.T) {
	fm, _, err := Split([]byte("---\n\nSome prose with [a link](/x.md).\n\n---\nMore\n"))
	require.NoError(t, err)
	require.NotNil(t, fm)

	_, err = fm.Fields()
	require.Error(t, err)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	raw := []byte("title: abc\ntags:\n  - one\n")

	fields, err := ParseYAML(raw)
	require.NoError(t, err)
	require.Equal(t, "abc", fields["title"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}
