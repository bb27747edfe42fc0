package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextAccumulates(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b-1")
	ctx = WithStage(ctx, "walk")
	ctx = WithTrigger(ctx, "watch")

	assert.Equal(t, LogContext{BuildID: "b-1", Stage: "walk", Trigger: "watch"}, FromContext(ctx))

	// Stage changes do not leak back into the parent.
	parent := WithBuildID(context.Background(), "b-2")
	_ = WithStage(parent, "export")
	assert.Empty(t, FromContext(parent).Stage)
}

func TestLogAttributes(t *testing.T) {
	buf := captureJSON(t)
	ctx := WithStage(WithBuildID(context.Background(), "b-9"), "finalize")

	InfoContext(ctx, "pages finalized", logfields.Pages(3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "pages finalized", rec["msg"])
	assert.Equal(t, "b-9", rec[logfields.KeyBuildID])
	assert.Equal(t, "finalize", rec[logfields.KeyStage])
	assert.InDelta(t, 3, rec[logfields.KeyPages], 0)
	assert.NotContains(t, rec, "trigger")
}

func TestLevels(t *testing.T) {
	buf := captureJSON(t)
	ctx := context.Background()
	DebugContext(ctx, "d")
	WarnContext(ctx, "w")
	ErrorContext(ctx, "e")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	var last map[string]any
	require.NoError(t, json.Unmarshal(lines[2], &last))
	assert.Equal(t, "ERROR", last["level"])
}
