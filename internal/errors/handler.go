package errors

import (
	"fmt"
	"sync"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput and maps errors to exit codes.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

// NewCLIHandler creates a handler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

// Report prints err and returns the process exit code for it.
// A nil error returns 0; anything else returns 1.
func (h *CLIHandler) Report(err error) int {
	if err == nil {
		return 0
	}
	kind := KindOf(err)
	if kind == KindUnknown {
		h.Error(err.Error())
	} else {
		h.Error(fmt.Sprintf("%s (%s error)", err.Error(), kind))
	}
	return 1
}
