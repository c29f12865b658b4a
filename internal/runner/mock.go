package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of Runner for testing.
// Expectations are keyed on the command name followed by its arguments:
//
//	r := new(MockRunner)
//	r.On("Run", "pactl", []string{"get-sink-mute", "@DEFAULT_SINK@"}).Return("Mute: no", nil)
//
//	out, err := r.Run(ctx, "pactl", "get-sink-mute", "@DEFAULT_SINK@")
//	r.AssertExpectations(t)
type MockRunner struct {
	mock.Mock
}

// Run returns the mocked output for name and args.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if args == nil {
		args = []string{}
	}
	ret := m.Called(name, args)
	return ret.String(0), ret.Error(1)
}
