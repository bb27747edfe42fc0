package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"config", ConfigError("overlapping mounts").Build(), 7},
		{"network", NewError(CategoryNetwork, "nats").Build(), 8},
		{"internal", InternalError("no converter").Build(), 10},
		{"filesystem", NewError(CategoryFileSystem, "permission denied").Build(), 11},
		{"export", ExportError("sqlite").Build(), 11},
		{"parse", ParseError("bad yaml").Build(), 1},
		{"unclassified", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapterFormat(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	assert.Empty(t, quiet.FormatError(nil))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Contains(t, quiet.FormatError(ConfigError("mount segment contains a slash").WithContext("segment", "a/b").Build()), "segment=a/b")
	assert.Contains(t, quiet.FormatError(InternalError("secret").Build()), "use -v")

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(InternalError("secret").Build()), "secret")
}

func TestCLIErrorAdapterLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	adapter.Log(ParseError("bad yaml").WithContext("path", "x.md").Build())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "path=x.md")

	buf.Reset()
	adapter.Log(ConfigError("bad mount").Build())
	assert.Contains(t, buf.String(), "level=ERROR")
}
