package pactl

import (
	stderrors "errors"
	"regexp"
	"strconv"

	"github.com/cristianoliveira/volume-notify/internal/errors"
)

// ErrNoChannels is returned when a volume report contains no channel lines.
var ErrNoChannels = stderrors.New("no channels in volume report")

// MutedText is the exact get-sink-mute output of a muted sink.
const MutedText = "Mute: yes"

// Icon names from the freedesktop icon naming scheme.
const (
	IconMuted  = "audio-volume-muted"
	IconLow    = "audio-volume-low"
	IconMedium = "audio-volume-medium"
	IconHigh   = "audio-volume-high"
)

// channelPattern matches one channel descriptor, such as "front-left: 32768 /  50% / -18.06 dB"
// or "Channel 1: 0 / 50% / 0.00 dB". Leading words without a colon belong to the channel name.
// A silent channel reports -inf dB.
var channelPattern = regexp.MustCompile(`(?:[^\s:,]+ )*\S+: [0-9]+ / \s*([0-9]+)% / (?:-?[0-9.]+|-inf) dB`)

// Report is the parsed get-sink-volume output.
type Report struct {
	// Channels holds each matched channel descriptor verbatim, in report order.
	Channels []string
	// Percent is the truncated mean of the channel percentages.
	Percent int
}

// ParseVolume extracts every channel descriptor from a get-sink-volume report.
func ParseVolume(text string) (Report, error) {
	matches := channelPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return Report{}, errors.New(errors.KindParse, "parse volume report", ErrNoChannels)
	}

	report := Report{Channels: make([]string, 0, len(matches))}
	total := 0
	for _, m := range matches {
		pct, err := strconv.Atoi(m[1])
		if err != nil {
			return Report{}, errors.New(errors.KindParse, "parse volume report", err)
		}
		report.Channels = append(report.Channels, m[0])
		total += pct
	}
	report.Percent = total / len(matches)
	return report, nil
}

// IsMuted reports whether muteText is the muted get-sink-mute output.
func IsMuted(muteText string) bool {
	return muteText == MutedText
}

// Icon picks the notification icon for a mute state and volume percentage.
// Buckets: 0 muted, 1-32 low, 33-65 medium, 66 and above high.
func Icon(muteText string, percent int) string {
	if IsMuted(muteText) {
		return IconMuted
	}
	switch {
	case percent <= 0:
		return IconMuted
	case percent < 33:
		return IconLow
	case percent < 66:
		return IconMedium
	default:
		return IconHigh
	}
}
