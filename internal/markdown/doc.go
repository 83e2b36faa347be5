// Package markdown parses Markdown bodies with Goldmark for analysis and applies
// minimal byte-range edits to them.
//
// Nothing in this package re-renders Markdown: callers locate what they want to change
// with ExtractLinks and splice replacements into the original bytes with ApplyEdits,
// so every byte they did not touch survives exactly as written.
package markdown
