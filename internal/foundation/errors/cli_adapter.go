package errors

import (
	"context"
	"log/slog"
)

// exitCodes maps categories to process exit codes. Unlisted categories exit 1.
var exitCodes = map[ErrorCategory]int{
	CategoryConfig:     7,
	CategoryNetwork:    8,
	CategoryInternal:   10,
	CategoryBuild:      11,
	CategoryFileSystem: 11,
	CategoryExport:     11,
}

// CLIErrorAdapter turns errors into exit codes and terminal output.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor returns the process exit code for err.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := AsClassified(err)
	if !ok {
		return 1
	}
	if code, ok := exitCodes[ce.category]; ok {
		return code
	}
	return 1
}

// FormatError renders err for the terminal. Internal errors stay terse unless verbose.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if ce, ok := AsClassified(err); ok && ce.category == CategoryInternal && !a.verbose {
		return "Error: internal error (use -v for details)"
	}
	return "Error: " + err.Error()
}

// Log writes err at a level derived from its severity.
func (a *CLIErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", slog.String("error", err.Error()))
		return
	}
	attrs := []slog.Attr{slog.String("category", string(ce.category))}
	for k, v := range ce.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if ce.cause != nil {
		attrs = append(attrs, slog.String("cause", ce.cause.Error()))
	}
	level := slog.LevelError
	if ce.severity == SeverityWarning {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, ce.message, attrs...)
}
