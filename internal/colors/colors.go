// Package colors provides styled console output for volume-notify.
// Every message is mirrored into the structured logger when one is set.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ANSI color numbers used by the styles below.
const (
	Red    = "1"
	Yellow = "3"
	Blue   = "4"
	Cyan   = "6"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red)).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue))
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
)

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	quietEnabled = false
	logger       Logger
	loggerMu     sync.RWMutex
	writeMu      sync.Mutex
)

func init() {
	if val := os.Getenv("VOLUME_NOTIFY_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debugEnabled
}

// SetQuiet suppresses warnings and info messages. Errors are always printed.
func SetQuiet(enabled bool) {
	quietEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// write prints one prefixed line. Write failures fall back to a plain stderr line.
func write(w io.Writer, prefix string, msg string) {
	writeMu.Lock()
	defer writeMu.Unlock()
	line := msg
	if prefix != "" {
		line = prefix + " " + msg
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	write(os.Stderr, errorStyle.Render("Error:"), msg)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	if quietEnabled {
		return
	}
	write(os.Stderr, warningStyle.Render("Warning:"), msg)
}

// Info outputs an informational message to stderr.
// stdout is left alone so the tool prints nothing on success.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	if quietEnabled {
		return
	}
	write(os.Stderr, "", infoStyle.Render(msg))
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	if !debugEnabled {
		return
	}
	write(os.Stderr, debugStyle.Render("Debug:"), msg)
}
