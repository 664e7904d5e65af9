package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	SetDefault(l)
	t.Cleanup(func() { SetDefault(nil) })
	return &buf
}

func TestLog_FormatsFields(t *testing.T) {
	buf := withLogger(t)

	Info(CatRegistry, "record added", "email", "ana@x.com", "count", 1)

	require.Equal(t, "2026-01-02T03:04:05 [INFO] [registry] record added email=ana@x.com count=1\n", buf.String())
}

func TestLog_OddFieldCount(t *testing.T) {
	buf := withLogger(t)

	Warn(CatUI, "dangling", "key")

	require.Contains(t, buf.String(), "key=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := withLogger(t)

	ErrorErr(CatSeed, "bad entry", errors.New("boom"), "index", 2)
	ErrorErr(CatSeed, "no error", nil)

	require.Contains(t, buf.String(), "[ERROR] [seed] bad entry index=2 error=boom")
	require.Contains(t, buf.String(), "no error error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	buf := withLogger(t)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Error(CatUI, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatUI, "muted")
	require.Empty(t, buf.String())
}

func TestLog_NoDefaultIsSafe(t *testing.T) {
	SetDefault(nil)
	Info(CatConfig, "nobody listening")
	require.Nil(t, NewListener(context.Background()))
}

func TestLog_ListenerReceivesEntries(t *testing.T) {
	withLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatShell, "hello")

	entry, ok := l.Listen()().(Entry)
	require.True(t, ok)
	require.Contains(t, entry.Payload, "[shell] hello")
}
