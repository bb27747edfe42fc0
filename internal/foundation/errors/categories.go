package errors

// ErrorCategory groups errors by the part of a build that raised them.
type ErrorCategory string

const (
	// CategoryConfig covers site.yml problems and mount declarations. Always fatal.
	CategoryConfig ErrorCategory = "config"
	// CategoryParse covers malformed front-matter and directory configs.
	CategoryParse ErrorCategory = "parse"
	// CategoryMissingContent covers declared sections or pages with no file behind them.
	CategoryMissingContent ErrorCategory = "missing_content"
	CategoryFileSystem     ErrorCategory = "filesystem"
	CategoryBuild          ErrorCategory = "build"
	CategoryExport         ErrorCategory = "export"
	CategoryNetwork        ErrorCategory = "network"
	CategoryInternal       ErrorCategory = "internal"
)

// ErrorSeverity tells the caller whether a build may continue.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // no document is produced
	SeverityError   ErrorSeverity = "error"   // the current operation fails
	SeverityWarning ErrorSeverity = "warning" // counted, logged, build continues
)

// ErrorContext holds structured fields attached to an error ("path", "segment", "field").
type ErrorContext map[string]any

// With returns a copy of c carrying key=value.
func (c ErrorContext) With(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}

// String returns the value under key when it is a string.
func (c ErrorContext) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
