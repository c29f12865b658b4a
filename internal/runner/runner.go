// Package runner executes external commands for volume-notify.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cristianoliveira/volume-notify/internal/colors"
	"github.com/cristianoliveira/volume-notify/internal/errors"
)

// Runner runs a command to completion and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultRunner implements Runner with os/exec.
// The child's stderr is wired to Stderr so its diagnostics reach the user directly.
type DefaultRunner struct {
	Stderr io.Writer
}

// NewDefaultRunner creates a DefaultRunner that inherits the process stderr.
func NewDefaultRunner() *DefaultRunner {
	return &DefaultRunner{Stderr: os.Stderr}
}

// Run executes name with args and waits for it to exit. There is no timeout;
// only ctx cancellation stops a running child.
func (r *DefaultRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	start := time.Now()
	fields := map[string]interface{}{"command": name, "args_count": len(args)}
	colors.StructuredDebug("runner", "run", "started", nil, fields)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	fields["duration_seconds"] = time.Since(start).Seconds()
	if err != nil {
		err = classify(name, args, err)
		colors.StructuredError("runner", "run", "failed", err, fields)
		return "", err
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		err := errors.New(errors.KindDecode, commandLine(name, args), ErrInvalidOutput)
		colors.StructuredError("runner", "run", "failed", err, fields)
		return "", err
	}
	colors.StructuredDebug("runner", "run", "completed", nil, fields)
	return strings.TrimSpace(string(out)), nil
}

// classify maps an exec error onto the runner sentinels.
func classify(name string, args []string, err error) error {
	op := commandLine(name, args)
	var exitErr *exec.ExitError
	switch {
	case stderrors.As(err, &exitErr):
		return errors.New(errors.KindSubprocess, op, fmt.Errorf("%w: exit status %d", ErrCommandFailed, exitErr.ExitCode()))
	case stderrors.Is(err, exec.ErrNotFound):
		return errors.New(errors.KindSubprocess, op, fmt.Errorf("%w: %s", ErrCommandNotFound, name))
	default:
		return errors.New(errors.KindSubprocess, op, fmt.Errorf("failed to start: %w", err))
	}
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
