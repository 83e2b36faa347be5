package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID         = "run_id"
	KeyPreprocessor  = "preprocessor"
	KeyRenderer      = "renderer"
	KeyMDBookVersion = "mdbook_version"
	KeyRequirement   = "requirement"
	KeyChapter       = "chapter"
	KeyChapterName   = "chapter_name"
	KeyPrefix        = "prefix"
	KeyRewritten     = "rewritten"
	KeyChapters      = "chapters"
	KeyWorkers       = "workers"
	KeyDurationMS    = "duration_ms"
	KeyPath          = "path"
	KeyError         = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr            { return slog.String(KeyRunID, id) }
func Preprocessor(name string) slog.Attr   { return slog.String(KeyPreprocessor, name) }
func Renderer(r string) slog.Attr          { return slog.String(KeyRenderer, r) }
func MDBookVersion(v string) slog.Attr     { return slog.String(KeyMDBookVersion, v) }
func Requirement(r string) slog.Attr       { return slog.String(KeyRequirement, r) }
func Chapter(path string) slog.Attr        { return slog.String(KeyChapter, path) }
func ChapterName(name string) slog.Attr    { return slog.String(KeyChapterName, name) }
func Prefix(p string) slog.Attr            { return slog.String(KeyPrefix, p) }
func Rewritten(n int) slog.Attr            { return slog.Int(KeyRewritten, n) }
func Chapters(n int) slog.Attr             { return slog.Int(KeyChapters, n) }
func Workers(n int) slog.Attr              { return slog.Int(KeyWorkers, n) }
func Path(p string) slog.Attr              { return slog.String(KeyPath, p) }
func Duration(d time.Duration) slog.Attr   { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
