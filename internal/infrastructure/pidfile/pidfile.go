package pidfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile keeps one lthgame-server per host
type PIDFile struct {
	path string
	pid  int
}

func New(path string) *PIDFile {
	return &PIDFile{path: path, pid: os.Getpid()}
}

// Acquire creates the file holding our PID. A file left by a dead or
// unparsable owner is replaced once; a live owner is an error.
func (p *PIDFile) Acquire() error {
	for attempt := 0; attempt < 2; attempt++ {
		err := p.create()
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("failed to write PID file: %w", err)
		}

		owner, readErr := p.owner()
		if readErr == nil && alive(owner) {
			return fmt.Errorf("server is already running (PID %d)", owner)
		}
		if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale PID file: %w", err)
		}
	}
	return fmt.Errorf("failed to acquire PID file %s", p.path)
}

// Release removes the file if it still names this process
func (p *PIDFile) Release() error {
	owner, err := p.owner()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err == nil && owner != p.pid {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) create() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%d\n", p.pid); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (p *PIDFile) owner() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// alive probes pid with signal 0; EPERM still means the process exists
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
