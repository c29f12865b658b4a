package runner

import "errors"

var (
	// ErrCommandNotFound is returned when the executable cannot be located.
	ErrCommandNotFound = errors.New("command not found")

	// ErrCommandFailed is returned when a command exits with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrInvalidOutput is returned when a command prints something that is not valid UTF-8.
	ErrInvalidOutput = errors.New("command output is not valid UTF-8")
)
