package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/tkoskela/fitplan/internal/logging"
)

func TestContextHandlerAddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := logging.WithAttrs(t.Context(), slog.Int64("user_id", 42))
	logger.LogAttrs(ctx, slog.LevelInfo, "hello")

	got := buf.String()
	if !strings.Contains(got, "user_id=42") {
		t.Errorf("log output missing context attribute: %q", got)
	}
	if !strings.Contains(got, "msg=hello") {
		t.Errorf("log output missing message: %q", got)
	}
}

func TestContextHandlerWithoutAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	logger.LogAttrs(t.Context(), slog.LevelInfo, "plain")

	if !strings.Contains(buf.String(), "msg=plain") {
		t.Errorf("log output missing message: %q", buf.String())
	}
}
