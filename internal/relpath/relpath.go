// Package relpath computes how far a book document sits below the book root and the
// "../" prefix that climbs back up to it.
package relpath

import "strings"

// UpReference is the path token that climbs one directory.
const UpReference = "../"

// Depth returns how many directories separate the book root from the directory
// containing docPath: the number of path segments minus one, floored at zero.
// "chapter.md" has depth 0 and "a/b/c.md" has depth 2.
//
// Empty and "." segments are ignored and both '/' and '\' separate segments, so
// "a//b.md", "./a/b.md" and `a\b.md` all have depth 1. A path without segments
// degenerates to depth 0.
func Depth(docPath string) int {
	segments := 0
	for _, seg := range strings.FieldsFunc(docPath, isSeparator) {
		if seg == "." {
			continue
		}
		segments++
	}
	if segments <= 1 {
		return 0
	}
	return segments - 1
}

// Prefix returns Depth(docPath) repetitions of UpReference.
func Prefix(docPath string) string {
	return strings.Repeat(UpReference, Depth(docPath))
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
