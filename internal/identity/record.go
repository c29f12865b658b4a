// Package identity persists the id of the last notification volume-notify sent,
// so that later invocations replace that notification instead of stacking new ones.
//
// The record is a small file holding either nothing or the decimal id. Separate
// invocations coordinate through flock(2) on that file: every invocation holds a
// shared lock from Open until Close, and an invocation that finds the record empty
// upgrades to an exclusive lock before deciding to send a fresh notification and
// storing its id. At most one invocation per record lifetime performs that write;
// all others observe the stored id and replace the same notification.
package identity

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianoliveira/volume-notify/internal/colors"
	"github.com/cristianoliveira/volume-notify/internal/errors"
	"golang.org/x/sys/unix"
)

var (
	// ErrCorrupt is returned when the record holds something other than a plain non-negative integer.
	ErrCorrupt = stderrors.New("notification record is corrupt")

	// ErrClosed is returned when a closed record is used.
	ErrClosed = stderrors.New("notification record is closed")

	// ErrExchanged is returned when Exchange is called a second time on the same record.
	ErrExchanged = stderrors.New("notification record already exchanged")

	// errWriteNotClaimed guards the write path: it is only reachable after an
	// exclusive re-read found the record empty.
	errWriteNotClaimed = stderrors.New("write attempted without an exclusive claim on an empty record")
)

// ID is a notification identifier as returned by the notification server.
type ID uint32

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a plain decimal, non-negative notification id.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// Issuer sends the notification for this invocation. found reports whether prev
// is a stored id to replace; the returned id is the one the server assigned.
type Issuer func(prev ID, found bool) (ID, error)

// Result describes what Exchange observed and did.
type Result struct {
	// Previous is the stored id, valid only when Found is set.
	Previous ID
	Found    bool
	// Current is the id returned by the Issuer.
	Current ID
	// Written is set when this invocation stored Current as the first id.
	Written bool
}

type lockState int

const (
	unlocked lockState = iota
	shared
	exclusive
)

// Record is an open, locked notification-identity record.
type Record struct {
	file      *os.File
	path      string
	lock      lockState
	claimed   bool
	exchanged bool
}

// Open opens the record at path for reading and writing, creating it (and its
// parent directory) if absent, and takes a shared lock on it. The lock is held
// until Close or process exit. Open blocks until the lock is granted.
func Open(path string) (*Record, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.New(errors.KindIO, "create record directory", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.New(errors.KindIO, "open record", err)
	}
	r := &Record{file: f, path: path}
	if err := r.setLock(shared); err != nil {
		f.Close()
		return nil, err
	}
	colors.StructuredDebug("identity", "open", "completed", nil, map[string]interface{}{"path": path})
	return r, nil
}

// Path returns the record's location.
func (r *Record) Path() string {
	return r.path
}

// Close releases the lock and closes the file.
func (r *Record) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.lock = unlocked
	if err != nil {
		return errors.New(errors.KindIO, "close record", err)
	}
	return nil
}

// Exchange reads the stored id, calls issue with it, and stores the issued id
// if and only if no id was stored.
//
// The record is first read under the shared lock from Open. If it holds an id,
// issue is called with it and nothing is written. Otherwise the lock is upgraded
// to exclusive and the record re-read, since another invocation may have stored
// an id in between. If it is still empty, issue runs while the exclusive lock is
// held and its id is written as the record's sole contents. The lock is never
// downgraded.
//
// Exchange may be called once per Record.
func (r *Record) Exchange(issue Issuer) (Result, error) {
	if r.file == nil {
		return Result{}, errors.New(errors.KindIO, "exchange", ErrClosed)
	}
	if r.exchanged {
		return Result{}, errors.New(errors.KindIO, "exchange", ErrExchanged)
	}
	r.exchanged = true

	prev, found, err := r.readEscalating()
	if err != nil {
		return Result{}, err
	}
	res := Result{Previous: prev, Found: found}

	id, err := issue(prev, found)
	if err != nil {
		return res, err
	}
	res.Current = id
	if found {
		return res, nil
	}

	if err := r.writeOnce(id); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// readEscalating implements the shared-then-exclusive read. When it reports
// found == false the record is exclusively locked and claimed for writeOnce.
func (r *Record) readEscalating() (ID, bool, error) {
	id, found, err := r.read()
	if err != nil || found {
		return id, found, err
	}

	if err := r.setLock(exclusive); err != nil {
		return 0, false, err
	}
	id, found, err = r.read()
	if err != nil {
		return 0, false, err
	}
	r.claimed = !found
	colors.StructuredDebug("identity", "escalate", "completed", nil, map[string]interface{}{"path": r.path, "found": found})
	return id, found, nil
}

// read parses the whole record. Empty or whitespace-only content means no id.
func (r *Record) read() (ID, bool, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return 0, false, errors.New(errors.KindIO, "read record", err)
	}
	data, err := io.ReadAll(r.file)
	if err != nil {
		return 0, false, errors.New(errors.KindIO, "read record", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, false, nil
	}
	id, err := ParseID(content)
	if err != nil {
		return 0, false, errors.New(errors.KindParse, "parse record "+r.path, fmt.Errorf("%w: %q", ErrCorrupt, content))
	}
	return id, true, nil
}

// writeOnce replaces the record's contents with id.
func (r *Record) writeOnce(id ID) error {
	if r.lock != exclusive || !r.claimed {
		return errors.New(errors.KindIO, "write record", errWriteNotClaimed)
	}
	r.claimed = false
	if err := r.file.Truncate(0); err != nil {
		return errors.New(errors.KindIO, "truncate record", err)
	}
	if _, err := r.file.WriteAt([]byte(id.String()), 0); err != nil {
		return errors.New(errors.KindIO, "write record", err)
	}
	colors.StructuredDebug("identity", "write", "completed", nil, map[string]interface{}{"path": r.path, "id": uint32(id)})
	return nil
}

// setLock blocks until the requested lock is granted.
func (r *Record) setLock(state lockState) error {
	how := unix.LOCK_SH
	if state == exclusive {
		how = unix.LOCK_EX
	}
	if err := flock(r.file, how); err != nil {
		return errors.New(errors.KindIO, "lock record", err)
	}
	r.lock = state
	return nil
}

// flock retries flock(2) across signal interruptions.
func flock(f *os.File, how int) error {
	fd := int(f.Fd())
	for {
		err := unix.Flock(fd, how)
		if err != unix.EINTR {
			return err
		}
	}
}
