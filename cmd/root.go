// Package cmd implements the volume-notify command line.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/volume-notify/internal/app"
	"github.com/cristianoliveira/volume-notify/internal/colors"
	"github.com/cristianoliveira/volume-notify/internal/config"
	"github.com/cristianoliveira/volume-notify/internal/errors"
	"github.com/cristianoliveira/volume-notify/internal/logging"
	"github.com/cristianoliveira/volume-notify/internal/notify"
	"github.com/cristianoliveira/volume-notify/internal/pactl"
	"github.com/cristianoliveira/volume-notify/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const rootLong = `volume-notify - change the volume and show a notification

USAGE:
    volume-notify [OPTIONS] [TASK]

TASKS:
    up      raise the sink volume by the interval
    down    lower the sink volume by the interval
    mute    toggle the sink mute state
    noop    only show the current state (default)

Successive invocations replace the same notification. Its id is kept in
the record file, $XDG_RUNTIME_DIR/volume.id by default.

Settings can also come from $XDG_CONFIG_HOME/volume-notify/config.toml
and VOLUME_NOTIFY_* environment variables; flags win over both.`

// rootFlags holds the parsed command-line flags.
type rootFlags struct {
	recordPath string
	interval   int
	sink       string
	debug      bool
	quiet      bool
}

// NewRootCmd creates the root command. Every external command runs through r.
func NewRootCmd(r runner.Runner) *cobra.Command {
	if r == nil {
		panic("NewRootCmd: runner dependency cannot be nil")
	}
	var flags rootFlags

	root := &cobra.Command{
		Use:           "volume-notify [task]",
		Short:         "Change the volume and show a notification",
		Long:          rootLong,
		Version:       versionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(c *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Usage("expected at most one task, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			task := string(pactl.TaskNoop)
			if len(args) == 1 {
				task = args[0]
			}

			config.Load()
			applyOutputFlags(c.Flags(), flags)
			if err := logging.InitGlobal(task); err != nil {
				colors.Warning("logging disabled:", err.Error())
			}
			defer logging.ShutdownGlobal()

			input := resolveInput(c.Flags(), flags, task)
			uc := app.NewVolumeUseCase(
				pactl.NewClient(r, config.Get("audio_tool", pactl.DefaultTool)),
				notify.NewSender(r, config.Get("notify_tool", notify.DefaultTool)),
				app.OpenIdentityRecord,
			)
			_, err := uc.Execute(commandContext(c), input)
			if err != nil {
				logging.GetGlobal().Error("invocation failed", "task", task, "kind", errors.KindOf(err).String(), "error", err.Error())
			}
			return err
		},
	}

	f := root.Flags()
	f.StringVarP(&flags.recordPath, "record-path", "p", "", "notification id record (default $XDG_RUNTIME_DIR/volume.id)")
	f.IntVarP(&flags.interval, "interval", "i", pactl.DefaultStep, "volume step for up and down")
	f.StringVarP(&flags.sink, "sink", "s", pactl.DefaultSink, "sink to act on")
	f.BoolVar(&flags.debug, "debug", false, "print debug output to stderr")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress warnings")

	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.New(errors.KindUsage, "", err)
	})
	root.AddCommand(NewVersionCmd())
	return root
}

// applyOutputFlags switches debug and quiet output on from flags or config.
func applyOutputFlags(fs *pflag.FlagSet, flags rootFlags) {
	debug := config.GetBool("debug", false)
	if fs.Changed("debug") {
		debug = flags.debug
	}
	quiet := config.GetBool("quiet", false)
	if fs.Changed("quiet") {
		quiet = flags.quiet
	}
	colors.SetDebug(debug)
	colors.SetQuiet(quiet)
}

// resolveInput merges config values with the flags the user actually set.
func resolveInput(fs *pflag.FlagSet, flags rootFlags, task string) app.VolumeInput {
	input := app.VolumeInput{
		Task:       strings.TrimSpace(task),
		Step:       config.GetInt("interval", pactl.DefaultStep),
		Sink:       config.Get("sink", pactl.DefaultSink),
		RecordPath: config.Get("record_path", config.DefaultRecordPath()),
		Title:      config.Get("notification_title", notify.DefaultTitle),
	}
	if fs.Changed("record-path") {
		input.RecordPath = flags.recordPath
	}
	if fs.Changed("interval") {
		input.Step = flags.interval
	}
	if fs.Changed("sink") {
		input.Sink = flags.sink
	}
	colors.Debug(fmt.Sprintf("task=%s sink=%s interval=%d record=%s", input.Task, input.Sink, input.Step, input.RecordPath))
	return input
}

func commandContext(c *cobra.Command) context.Context {
	if ctx := c.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd(runner.NewDefaultRunner())
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return errors.NewDefaultCLIHandler().Report(err)
}
