package app

import (
	"context"

	"github.com/cristianoliveira/volume-notify/internal/colors"
	"github.com/cristianoliveira/volume-notify/internal/identity"
	"github.com/cristianoliveira/volume-notify/internal/logging"
	"github.com/cristianoliveira/volume-notify/internal/notify"
	"github.com/cristianoliveira/volume-notify/internal/pactl"
)

// AudioClient changes and queries sink state.
type AudioClient interface {
	Apply(ctx context.Context, a pactl.Action) error
	Mute(ctx context.Context, sink string) (string, error)
	Volume(ctx context.Context, sink string) (pactl.Report, error)
}

// NotificationSender shows a notification and returns its server-assigned id.
type NotificationSender interface {
	Send(ctx context.Context, n notify.Notification) (identity.ID, error)
}

// Record is an open notification-identity record.
type Record interface {
	Exchange(issue identity.Issuer) (identity.Result, error)
	Close() error
}

// RecordOpener opens the record at path, taking its shared lock.
type RecordOpener func(path string) (Record, error)

// OpenIdentityRecord opens records with identity.Open.
func OpenIdentityRecord(path string) (Record, error) {
	r, err := identity.Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// VolumeInput represents the volume command inputs after flag parsing.
type VolumeInput struct {
	Task       string
	Step       int
	Sink       string
	RecordPath string
	Title      string
}

// VolumeUseCase applies a sink action and shows or replaces the volume notification.
type VolumeUseCase struct {
	audio  AudioClient
	sender NotificationSender
	open   RecordOpener
}

// NewVolumeUseCase creates a new volume use-case.
func NewVolumeUseCase(audio AudioClient, sender NotificationSender, open RecordOpener) *VolumeUseCase {
	if audio == nil {
		panic("NewVolumeUseCase: audio dependency cannot be nil")
	}
	if sender == nil {
		panic("NewVolumeUseCase: sender dependency cannot be nil")
	}
	if open == nil {
		open = OpenIdentityRecord
	}
	return &VolumeUseCase{audio: audio, sender: sender, open: open}
}

// Execute runs one invocation: apply the action, read back the sink state,
// then send the notification through the record so that only the first
// notification ever stores its id and every later one replaces it.
// An unknown task fails before any command runs or the record is opened.
func (u *VolumeUseCase) Execute(ctx context.Context, input VolumeInput) (identity.Result, error) {
	action, err := pactl.NewAction(input.Task, input.Step, input.Sink)
	if err != nil {
		return identity.Result{}, err
	}
	title := input.Title
	if title == "" {
		title = notify.DefaultTitle
	}
	log := logging.GetGlobal().With("task", string(action.Task), "sink", action.Sink)

	if err := u.audio.Apply(ctx, action); err != nil {
		return identity.Result{}, err
	}
	mute, err := u.audio.Mute(ctx, action.Sink)
	if err != nil {
		return identity.Result{}, err
	}
	report, err := u.audio.Volume(ctx, action.Sink)
	if err != nil {
		return identity.Result{}, err
	}
	log.Debug("sink state", "mute", mute, "percent", report.Percent, "channels", len(report.Channels))

	record, err := u.open(input.RecordPath)
	if err != nil {
		return identity.Result{}, err
	}
	defer record.Close()

	n := notify.Notification{
		Title: title,
		Body:  notify.Body(mute, report.Channels),
		Icon:  pactl.Icon(mute, report.Percent),
	}
	res, err := record.Exchange(func(prev identity.ID, found bool) (identity.ID, error) {
		n.Replace, n.HasReplace = prev, found
		return u.sender.Send(ctx, n)
	})
	if err != nil {
		return res, err
	}

	log.Info("notification sent", "id", uint32(res.Current), "replaced", res.Found, "stored", res.Written, "icon", n.Icon)
	colors.Debug("notification", res.Current.String(), "icon", n.Icon)
	return res, nil
}
