package logs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgifai/chatwidget/internal/consts"
)

func TestLineFormatter_Scope(t *testing.T) {
	ctx := context.WithValue(context.Background(), consts.CtxKeyLogID, "log-1")
	ctx = context.WithValue(ctx, consts.CtxKeyChatbotID, "bot-1")
	ctx = context.WithValue(ctx, consts.CtxKeySessionID, "session_1")

	entry := &logrus.Entry{
		Level:   logrus.InfoLevel,
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Message: "hello",
		Context: ctx,
	}
	out, err := (&customFormatter{}).Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "INFO 2026-01-02 03:04:05,000")
	assert.Contains(t, line, "log-1 [bot-1/session_1] hello\n")
}

func TestLineFormatter_NoContext(t *testing.T) {
	out, err := (&customFormatter{}).Format(&logrus.Entry{Level: logrus.WarnLevel, Message: "plain"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "WARN ")
	assert.NotContains(t, string(out), "[")
}

func TestDualWriter_StripsANSIForFile(t *testing.T) {
	var console, file bytes.Buffer
	w := &dualWriter{stdout: &console, file: &file}

	n, err := w.Write([]byte("\x1b[32mINFO\x1b[0m ready\n"))
	require.NoError(t, err)
	assert.Equal(t, len("\x1b[32mINFO\x1b[0m ready\n"), n)
	assert.Equal(t, "\x1b[32mINFO\x1b[0m ready\n", console.String())
	assert.Equal(t, "INFO ready\n", file.String())
}

func TestEnsureLogID(t *testing.T) {
	ctx := EnsureLogID(context.Background())
	id := GetLogID(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetLogID(EnsureLogID(ctx)))
}

func TestNewConfiguredLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := newConfiguredLogger(Options{Level: "debug", Output: "file", File: path})
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, l.GetLevel())

	l.Info("written %d", 1)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "written 1")

	_, err = newConfiguredLogger(Options{Output: "syslog"})
	assert.ErrorContains(t, err, "unsupported log output")

	_, err = newConfiguredLogger(Options{Output: "file"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	l := newDefaultLogger()
	l.SetLevel(ErrorLevel)
	assert.Equal(t, ErrorLevel, l.GetLevel())
	assert.Equal(t, "error", ErrorLevel.String())
}
