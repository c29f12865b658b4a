package pactl

import (
	"testing"

	"github.com/cristianoliveira/volume-notify/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVolume(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantChannels []string
		wantPercent  int
	}{
		{
			name:  "one line per channel",
			input: "Channel 1: 0 / 50% / 0.00 dB\nChannel 2: 0 / 70% / 0.00 dB",
			wantChannels: []string{
				"Channel 1: 0 / 50% / 0.00 dB",
				"Channel 2: 0 / 70% / 0.00 dB",
			},
			wantPercent: 60,
		},
		{
			name:  "pactl stereo report",
			input: "Volume: front-left: 32768 /  50% / -18.06 dB,   front-right: 39322 /  60% / -13.31 dB\n        balance 0.10",
			wantChannels: []string{
				"front-left: 32768 /  50% / -18.06 dB",
				"front-right: 39322 /  60% / -13.31 dB",
			},
			wantPercent: 55,
		},
		{
			name:         "mono at full volume",
			input:        "Volume: mono: 65536 / 100% / 0.00 dB",
			wantChannels: []string{"mono: 65536 / 100% / 0.00 dB"},
			wantPercent:  100,
		},
		{
			name:  "mean is truncated",
			input: "Volume: front-left: 21627 /  33% / -28.89 dB,   front-right: 22282 /  34% / -28.11 dB",
			wantChannels: []string{
				"front-left: 21627 /  33% / -28.89 dB",
				"front-right: 22282 /  34% / -28.11 dB",
			},
			wantPercent: 33,
		},
		{
			name:         "silent channel",
			input:        "Volume: mono: 0 /   0% / -inf dB",
			wantChannels: []string{"mono: 0 /   0% / -inf dB"},
			wantPercent:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseVolume(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChannels, report.Channels)
			assert.Equal(t, tt.wantPercent, report.Percent)
		})
	}
}

func TestParseVolumeNoChannels(t *testing.T) {
	_, err := ParseVolume("Failed to get sink information: No such entity")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoChannels)
	assert.Equal(t, errors.KindParse, errors.KindOf(err))
}

func TestIcon(t *testing.T) {
	tests := []struct {
		mute    string
		percent int
		want    string
	}{
		{"Mute: no", 0, IconMuted},
		{"Mute: no", 1, IconLow},
		{"Mute: no", 32, IconLow},
		{"Mute: no", 33, IconMedium},
		{"Mute: no", 65, IconMedium},
		{"Mute: no", 66, IconHigh},
		{"Mute: no", 100, IconHigh},
		{"Mute: no", 150, IconHigh},
		{"Mute: yes", 0, IconMuted},
		{"Mute: yes", 50, IconMuted},
		{"Mute: yes", 100, IconMuted},
		{"mute: yes", 50, IconMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Icon(tt.mute, tt.percent), "Icon(%q, %d)", tt.mute, tt.percent)
	}
}
