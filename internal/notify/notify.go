// Package notify sends desktop notifications through notify-send.
package notify

import (
	"context"
	"strings"

	"github.com/cristianoliveira/volume-notify/internal/errors"
	"github.com/cristianoliveira/volume-notify/internal/identity"
	"github.com/cristianoliveira/volume-notify/internal/runner"
)

// DefaultTool is the notification binary.
const DefaultTool = "notify-send"

// DefaultTitle is the summary shown on every notification.
const DefaultTitle = "Volume"

// Notification is one notify-send call.
type Notification struct {
	Title string
	Body  string
	Icon  string
	// Replace is the id to replace, used only when HasReplace is set.
	Replace    identity.ID
	HasReplace bool
}

// Body renders the mute line followed by one "- " prefixed line per channel.
func Body(muteLine string, channels []string) string {
	var b strings.Builder
	b.WriteString(muteLine)
	for _, c := range channels {
		b.WriteString("\n- ")
		b.WriteString(c)
	}
	return b.String()
}

// Args returns the notify-send arguments. -p prints the assigned id.
func (n Notification) Args() []string {
	args := []string{n.Title, n.Body, "-p", "-i", n.Icon}
	if n.HasReplace {
		args = append(args, "-r", n.Replace.String())
	}
	return args
}

// Sender sends notifications through a runner.
type Sender struct {
	runner runner.Runner
	tool   string
}

// NewSender creates a Sender. An empty tool selects DefaultTool.
func NewSender(r runner.Runner, tool string) *Sender {
	if r == nil {
		panic("NewSender: runner dependency cannot be nil")
	}
	if tool == "" {
		tool = DefaultTool
	}
	return &Sender{runner: r, tool: tool}
}

// Send shows n and returns the id the notification server assigned.
func (s *Sender) Send(ctx context.Context, n Notification) (identity.ID, error) {
	out, err := s.runner.Run(ctx, s.tool, n.Args()...)
	if err != nil {
		return 0, err
	}
	id, err := identity.ParseID(out)
	if err != nil {
		return 0, errors.New(errors.KindParse, "parse notification id", err)
	}
	return id, nil
}
