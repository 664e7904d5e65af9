// Package log is roster's debug logger. Entries carry a level, a category and
// key=value fields, go to a file opened through tea.LogToFile, and are
// republished on a broker so a running UI can tail them.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/roster/internal/pubsub"
)

// Level is log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log lines.
type Category string

const (
	CatRegistry Category = "registry" // Manager and controller operations
	CatUI       Category = "ui"       // TUI component updates
	CatConfig   Category = "config"   // Configuration loading/saving
	CatShell    Category = "shell"    // Line-mode session
	CatSeed     Category = "seed"     // Seed file import
	CatMetrics  Category = "metrics"  // Prometheus endpoint
	CatTrace    Category = "trace"    // OpenTelemetry provider
)

// Logger writes formatted entries to a writer.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var (
	stdMu sync.RWMutex
	std   *Logger
)

// New creates a logger writing to w. It is not installed globally.
func New(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
		now:      time.Now,
	}
}

// Init opens path via tea.LogToFile and installs the result as the package
// logger. The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "roster")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	l := New(f)
	SetDefault(l)
	return func() {
		SetDefault(nil)
		l.broker.Close()
		_ = f.Close()
	}, nil
}

// SetDefault installs l as the package logger. nil disables logging.
func SetDefault(l *Logger) {
	stdMu.Lock()
	std = l
	stdMu.Unlock()
}

func current() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// SetEnabled toggles the package logger.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	current().log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	current().log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	current().log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	current().log(LevelError, cat, msg, fields...)
}

// ErrorErr logs msg at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	value := "<nil>"
	if err != nil {
		value = err.Error()
	}
	current().log(LevelError, cat, msg, append(fields, "error", value)...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}
	entry := format(l.now(), level, cat, msg, fields)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	l.mu.Unlock()

	l.broker.Publish(pubsub.LoggedEvent, entry)
}

// format renders one line: 2025-12-06T10:45:00 [ERROR] [registry] msg k=v
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	return b.String()
}

// Entry is a published log line.
type Entry = pubsub.Event[string]

// NewListener tails the package logger until ctx is cancelled. It returns
// nil when logging is not initialized.
func NewListener(ctx context.Context) *pubsub.Listener[string] {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}
