package identity

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each goroutine opens the record separately. flock(2) locks belong to the
// open file description, so the goroutines contend exactly like processes do.
func TestExchangeConcurrentFirstWriters(t *testing.T) {
	const workers = 16
	path := filepath.Join(t.TempDir(), "volume.id")

	var next atomic.Uint32
	next.Store(100)
	results := make([]Result, workers)
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			r, err := Open(path)
			if err != nil {
				errs[i] = err
				return
			}
			defer r.Close()
			results[i], errs[i] = r.Exchange(func(prev ID, found bool) (ID, error) {
				if found {
					// Replacing keeps the server-assigned id.
					return prev, nil
				}
				return ID(next.Add(1)), nil
			})
		}(i)
	}
	close(start)
	wg.Wait()

	var writers []Result
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if results[i].Written {
			writers = append(writers, results[i])
		}
	}
	require.Len(t, writers, 1, "exactly one invocation may store the first id")
	winner := writers[0].Current

	for _, res := range results {
		if res.Written {
			assert.False(t, res.Found)
			continue
		}
		assert.True(t, res.Found)
		assert.Equal(t, winner, res.Previous)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, winner.String(), string(data))
}

const helperEnv = "VOLUME_NOTIFY_IDENTITY_HELPER"

// TestHelperProcess is run as a child process by TestExchangeConcurrentProcesses.
func TestHelperProcess(t *testing.T) {
	path := os.Getenv(helperEnv)
	if path == "" {
		return
	}
	r, err := Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	res, err := r.Exchange(func(prev ID, found bool) (ID, error) {
		if found {
			return prev, nil
		}
		return ID(os.Getpid()), nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if res.Written {
		fmt.Printf("wrote %d\n", res.Current)
	} else {
		fmt.Printf("found %d\n", res.Previous)
	}
	os.Exit(0)
}

func TestExchangeConcurrentProcesses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-process test in short mode")
	}
	const procs = 8
	path := filepath.Join(t.TempDir(), "volume.id")

	cmds := make([]*exec.Cmd, procs)
	outs := make([]*bytes.Buffer, procs)
	for i := range cmds {
		cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
		cmd.Env = append(os.Environ(), helperEnv+"="+path)
		outs[i] = &bytes.Buffer{}
		cmd.Stdout = outs[i]
		cmd.Stderr = os.Stderr
		cmds[i] = cmd
	}
	for _, cmd := range cmds {
		require.NoError(t, cmd.Start())
	}
	for _, cmd := range cmds {
		require.NoError(t, cmd.Wait())
	}

	var wrote []string
	var found []string
	for _, out := range outs {
		line := strings.TrimSpace(out.String())
		switch {
		case strings.HasPrefix(line, "wrote "):
			wrote = append(wrote, strings.TrimPrefix(line, "wrote "))
		case strings.HasPrefix(line, "found "):
			found = append(found, strings.TrimPrefix(line, "found "))
		default:
			t.Fatalf("unexpected helper output %q", line)
		}
	}
	require.Len(t, wrote, 1)
	_, err := strconv.Atoi(wrote[0])
	require.NoError(t, err)
	for _, id := range found {
		assert.Equal(t, wrote[0], id)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wrote[0], string(data))
}
