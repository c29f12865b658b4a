package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

var structuredMu sync.Mutex

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// StructuredLogEntry represents a structured log entry.
type StructuredLogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     StructuredLogLevel     `json:"level"`
	Component string                 `json:"component"`
	Action    string                 `json:"action"`
	Status    string                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// StructuredLog records an entry in the structured logger and, in debug mode,
// writes it to stderr as a JSON line.
func StructuredLog(level StructuredLogLevel, component, action, status string, err error, fields map[string]interface{}) {
	if l := currentLogger(); l != nil {
		args := []any{"component", component, "action", action, "status", status}
		if err != nil {
			args = append(args, "error", err.Error())
		}
		for k, v := range fields {
			args = append(args, k, v)
		}
		msg := component + "." + action
		switch level {
		case LevelDebug:
			l.Debug(msg, args...)
		case LevelWarn:
			l.Warn(msg, args...)
		case LevelError:
			l.Error(msg, args...)
		default:
			l.Info(msg, args...)
		}
	}
	if !debugEnabled {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: component,
		Action:    action,
		Status:    status,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal structured log: %v\n", marshalErr)
		return
	}

	structuredMu.Lock()
	defer structuredMu.Unlock()
	fmt.Fprintf(os.Stderr, "%s\n", data)
}

// StructuredDebug logs a structured debug entry.
func StructuredDebug(component, action, status string, err error, fields map[string]interface{}) {
	StructuredLog(LevelDebug, component, action, status, err, fields)
}

// StructuredInfo logs a structured info entry.
func StructuredInfo(component, action, status string, err error, fields map[string]interface{}) {
	StructuredLog(LevelInfo, component, action, status, err, fields)
}

// StructuredError logs a structured error entry.
func StructuredError(component, action, status string, err error, fields map[string]interface{}) {
	StructuredLog(LevelError, component, action, status, err, fields)
}
