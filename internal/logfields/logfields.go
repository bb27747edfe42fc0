package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyName       = "name"
	KeyRoute      = "route"
	KeySection    = "section"
	KeyMount      = "mount"
	KeyMode       = "mode"
	KeyVersion    = "version"
	KeyPages      = "pages"
	KeySections   = "sections"
	KeyWarnings   = "warnings"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Name(n string) slog.Attr          { return slog.String(KeyName, n) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Section(s string) slog.Attr       { return slog.String(KeySection, s) }
func Mount(segment string) slog.Attr   { return slog.String(KeyMount, segment) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Sections(n int) slog.Attr         { return slog.Int(KeySections, n) }
func Warnings(n int) slog.Attr         { return slog.Int(KeyWarnings, n) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
