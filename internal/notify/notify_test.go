package notify

import (
	"context"
	"testing"

	"github.com/cristianoliveira/volume-notify/internal/errors"
	"github.com/cristianoliveira/volume-notify/internal/identity"
	"github.com/cristianoliveira/volume-notify/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody(t *testing.T) {
	got := Body("Mute: no", []string{"front-left: 32768 /  50% / -18.06 dB", "front-right: 32768 /  50% / -18.06 dB"})
	assert.Equal(t, "Mute: no\n- front-left: 32768 /  50% / -18.06 dB\n- front-right: 32768 /  50% / -18.06 dB", got)
	assert.Equal(t, "Mute: yes", Body("Mute: yes", nil))
}

func TestArgs(t *testing.T) {
	n := Notification{Title: "Volume", Body: "Mute: no\n- mono", Icon: "audio-volume-low"}
	assert.Equal(t, []string{"Volume", "Mute: no\n- mono", "-p", "-i", "audio-volume-low"}, n.Args())

	n.Replace, n.HasReplace = 17, true
	assert.Equal(t, []string{"Volume", "Mute: no\n- mono", "-p", "-i", "audio-volume-low", "-r", "17"}, n.Args())
}

func TestSend(t *testing.T) {
	n := Notification{Title: "Volume", Body: "Mute: no", Icon: "audio-volume-high"}
	r := new(runner.MockRunner)
	r.On("Run", "notify-send", n.Args()).Return("23", nil)

	id, err := NewSender(r, "").Send(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, identity.ID(23), id)
	r.AssertExpectations(t)
}

func TestSendUnparseableID(t *testing.T) {
	n := Notification{Title: "Volume", Body: "Mute: no", Icon: "audio-volume-high"}
	r := new(runner.MockRunner)
	r.On("Run", "dunstify", n.Args()).Return("not-a-number", nil)

	_, err := NewSender(r, "dunstify").Send(context.Background(), n)
	require.Error(t, err)
	assert.Equal(t, errors.KindParse, errors.KindOf(err))
}
