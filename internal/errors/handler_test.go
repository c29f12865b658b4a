package errors

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockColorOutput records the last message per level.
type mockColorOutput struct {
	mu         sync.Mutex
	errorMsg   string
	warningMsg string
	infoMsg    string
}

func (m *mockColorOutput) Error(msgs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(msgs) > 0 {
		m.errorMsg = msgs[0]
	}
}

func (m *mockColorOutput) Warning(msgs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(msgs) > 0 {
		m.warningMsg = msgs[0]
	}
}

func (m *mockColorOutput) Info(msgs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(msgs) > 0 {
		m.infoMsg = msgs[0]
	}
}

func TestCLIHandlerForwardsMessages(t *testing.T) {
	out := &mockColorOutput{}
	h := NewCLIHandler(out)

	h.Error("boom")
	h.Warning("careful")
	h.Info("fyi")

	assert.Equal(t, "boom", out.errorMsg)
	assert.Equal(t, "careful", out.warningMsg)
	assert.Equal(t, "fyi", out.infoMsg)
}

func TestCLIHandlerReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "nil error", err: nil, wantCode: 0, wantMsg: ""},
		{name: "plain error", err: fmt.Errorf("plain"), wantCode: 1, wantMsg: "plain"},
		{name: "usage error", err: Usage("unknown task %q", "sideways"), wantCode: 1, wantMsg: `unknown task "sideways" (usage error)`},
		{name: "io error", err: New(KindIO, "open record", io.ErrUnexpectedEOF), wantCode: 1, wantMsg: "open record: unexpected EOF (io error)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &mockColorOutput{}
			h := NewCLIHandler(out)
			require.Equal(t, tt.wantCode, h.Report(tt.err))
			assert.Equal(t, tt.wantMsg, out.errorMsg)
		})
	}
}

func TestKindOf(t *testing.T) {
	base := New(KindParse, "parse record", io.EOF)
	wrapped := fmt.Errorf("exchange: %w", base)

	assert.Equal(t, KindParse, KindOf(base))
	assert.Equal(t, KindParse, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(io.EOF))
	assert.True(t, Is(wrapped, io.EOF))
	assert.Equal(t, "parse", KindParse.String())
}

func TestNewNilError(t *testing.T) {
	assert.NoError(t, New(KindIO, "noop", nil))
}
