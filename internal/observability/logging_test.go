package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextValues(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithStage(ctx, "register")
	ctx = WithSource(ctx, "api.json")

	lc := extractLogContext(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "register", lc.Stage)
	assert.Equal(t, "api.json", lc.Source)
}

func TestStageOverridesKeepRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithStage(ctx, "load")
	ctx = WithStage(ctx, "persist")

	lc := extractLogContext(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "persist", lc.Stage)
}

func TestEmptyContextHasNoAttrs(t *testing.T) {
	assert.Empty(t, Attrs(context.Background()))
	assert.Same(t, slog.Default(), Logger(context.Background(), nil))
}

func TestInfoContextIncludesRunAttributes(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithStage(WithRunID(context.Background(), "run-7"), "render")

	InfoContext(ctx, "rendered", slog.Int("count", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rendered", entry["msg"])
	assert.Equal(t, "run-7", entry["run_id"])
	assert.Equal(t, "render", entry["stage"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func TestLoggerAttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := WithRunID(context.Background(), "run-9")

	Logger(ctx, base).Warn("careful")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-9", entry["run_id"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestWarnContextLevel(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithSource(WithRunID(context.Background(), "run-3"), "api.json")

	WarnContext(ctx, "resolution reported errors", slog.Int("count", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "api.json", entry["source"])
	assert.Equal(t, "run-3", entry["run_id"])
}
