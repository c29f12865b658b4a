package pactl

import (
	"context"

	"github.com/cristianoliveira/volume-notify/internal/runner"
)

// DefaultTool is the PulseAudio control binary.
const DefaultTool = "pactl"

// Client issues sink commands through a runner.
type Client struct {
	runner runner.Runner
	tool   string
}

// NewClient creates a Client. An empty tool selects DefaultTool.
func NewClient(r runner.Runner, tool string) *Client {
	if r == nil {
		panic("NewClient: runner dependency cannot be nil")
	}
	if tool == "" {
		tool = DefaultTool
	}
	return &Client{runner: r, tool: tool}
}

// Apply carries out the action on the sink.
func (c *Client) Apply(ctx context.Context, a Action) error {
	name, args := a.Command(c.tool)
	_, err := c.runner.Run(ctx, name, args...)
	return err
}

// Mute returns the raw get-sink-mute line, e.g. "Mute: no".
func (c *Client) Mute(ctx context.Context, sink string) (string, error) {
	return c.runner.Run(ctx, c.tool, "get-sink-mute", sink)
}

// Volume queries and parses the sink's channel volumes.
func (c *Client) Volume(ctx context.Context, sink string) (Report, error) {
	out, err := c.runner.Run(ctx, c.tool, "get-sink-volume", sink)
	if err != nil {
		return Report{}, err
	}
	return ParseVolume(out)
}
