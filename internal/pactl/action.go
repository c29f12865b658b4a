// Package pactl drives the PulseAudio command-line tool and parses its sink reports.
package pactl

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/volume-notify/internal/errors"
)

// Task is the action requested on the command line.
type Task string

const (
	TaskUp   Task = "up"
	TaskDown Task = "down"
	TaskMute Task = "mute"
	TaskNoop Task = "noop"
)

// DefaultSink addresses whatever sink the audio server currently uses by default.
const DefaultSink = "@DEFAULT_SINK@"

// DefaultStep is the default volume change, in pactl's raw volume units.
const DefaultStep = 512

// Tasks lists the accepted task names in help order.
var Tasks = []Task{TaskUp, TaskDown, TaskMute, TaskNoop}

// ParseTask validates a task name. Anything outside Tasks is a usage error.
func ParseTask(name string) (Task, error) {
	switch t := Task(name); t {
	case TaskUp, TaskDown, TaskMute, TaskNoop:
		return t, nil
	default:
		return "", errors.Usage("unknown task %s", name)
	}
}

// Action is one sink change request. It is built once per invocation.
type Action struct {
	Task Task
	Step int
	Sink string
}

// NewAction validates its inputs and returns an Action.
func NewAction(task string, step int, sink string) (Action, error) {
	t, err := ParseTask(task)
	if err != nil {
		return Action{}, err
	}
	if step <= 0 {
		return Action{}, errors.Usage("interval must be a positive integer, got %d", step)
	}
	if sink == "" {
		return Action{}, errors.Usage("sink must not be empty")
	}
	return Action{Task: t, Step: step, Sink: sink}, nil
}

// Command returns the program and arguments that carry out the action.
// noop runs "true" so every task takes the same path through the runner.
func (a Action) Command(tool string) (string, []string) {
	switch a.Task {
	case TaskUp:
		return tool, []string{"set-sink-volume", a.Sink, "+" + strconv.Itoa(a.Step)}
	case TaskDown:
		return tool, []string{"set-sink-volume", a.Sink, "-" + strconv.Itoa(a.Step)}
	case TaskMute:
		return tool, []string{"set-sink-mute", a.Sink, "toggle"}
	default:
		return "true", nil
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s(sink=%s, step=%d)", a.Task, a.Sink, a.Step)
}
