package book

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

const nestedBook = `{
	"sections": [
		{"Chapter": {"name": "Intro", "content": "# Intro\n", "number": [1], "sub_items": [], "path": "intro.md", "source_path": "intro.md", "parent_names": []}},
		"Separator",
		{"PartTitle": "Part one"},
		{"Chapter": {"name": "Guide", "content": "# Guide\n", "number": [2], "path": "guide/index.md", "source_path": "guide/index.md", "parent_names": [],
			"sub_items": [
				{"Chapter": {"name": "Setup", "content": "[a](/intro.md)", "number": [2, 1], "sub_items": [], "path": "guide/setup.md", "source_path": "guide/setup.md", "parent_names": ["Guide"]}},
				{"Chapter": {"name": "Draft", "content": "draft", "number": null, "sub_items": [], "path": null, "source_path": null, "parent_names": ["Guide"]}}
			]}}
	],
	"__non_exhaustive": null
}`

func TestParse_ChaptersDepthFirst(t *testing.T) {
	b, err := Parse([]byte(nestedBook))
	require.NoError(t, err)
	require.Equal(t, KeySections, b.itemsKey)

	chapters := b.Chapters()
	require.Len(t, chapters, 4)

	names := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		names = append(names, ch.Name())
	}
	require.Equal(t, []string{"Intro", "Guide", "Setup", "Draft"}, names)

	path, ok := chapters[2].Path()
	require.True(t, ok)
	require.Equal(t, "guide/setup.md", path)
	require.Equal(t, "sections[3].sub_items[0]", chapters[2].Location())

	_, ok = chapters[3].Path()
	require.False(t, ok, "draft chapters have no path")
	_, ok = chapters[3].SourcePath()
	require.False(t, ok)
}

func TestSetContent_EditsInPlace(t *testing.T) {
	b, err := Parse([]byte(nestedBook))
	require.NoError(t, err)

	setup := b.Chapters()[2]
	setup.SetContent("[a](../intro.md)")
	require.Equal(t, "[a](../intro.md)", setup.Content())

	var out bytes.Buffer
	require.NoError(t, b.Encode(&out))

	reparsed, err := Parse(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, "[a](../intro.md)", reparsed.Chapters()[2].Content())
}

func TestEncode_PreservesUnknownFields(t *testing.T) {
	in := `{"items":[{"Chapter":{"name":"A","content":"<b>x</b> & y","number":[1,2],"sub_items":[],"path":"a.md","source_path":"a.md","parent_names":[],"future":{"big":12345678901234567890}}}],"__non_exhaustive":null}`
	b, err := Parse([]byte(in))
	require.NoError(t, err)
	require.Equal(t, KeyItems, b.itemsKey)

	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf))
	require.JSONEq(t, in, buf.String())
	require.Contains(t, buf.String(), "12345678901234567890", "numbers are not rounded through float64")
	require.Contains(t, buf.String(), "<b>x</b> & y", "HTML is not escaped")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"not an object", `[]`},
		{"no items", `{"__non_exhaustive": null}`},
		{"items not array", `{"sections": {}}`},
		{"content not string", `{"sections":[{"Chapter":{"name":"A","content":3}}]}`},
		{"bad sub items", `{"sections":[{"Chapter":{"name":"A","content":"","sub_items":"x"}}]}`},
		{"unexpected item", `{"sections":[42]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryProtocol))
		})
	}
}

func TestParse_EmptyBook(t *testing.T) {
	b, err := Parse([]byte(`{"sections": [], "__non_exhaustive": null}`))
	require.NoError(t, err)
	require.Empty(t, b.Chapters())
}
