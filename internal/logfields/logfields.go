package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyLongname = "longname"
	KeyFilename = "filename"
	KeyURL      = "url"
	KeyTutorial = "tutorial"
	KeyTypeExpr = "type_expr"
	KeyKind     = "kind"
	KeyCategory = "category"
	KeyPath     = "path"
	KeyCount    = "count"
	KeyDuration = "duration_ms"
	KeyError    = "error"
	KeyStage    = "stage"
	KeySource   = "source"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Longname(n string) slog.Attr     { return slog.String(KeyLongname, n) }
func Filename(f string) slog.Attr     { return slog.String(KeyFilename, f) }
func Tutorial(n string) slog.Attr     { return slog.String(KeyTutorial, n) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Stage(s string) slog.Attr        { return slog.String(KeyStage, s) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
