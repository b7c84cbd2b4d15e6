package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// StuckDeploymentTimeout is how long a lock is trusted before it's
// considered abandoned by a crashed process, per the original's
// DEPLOYMENT_REPAIR_TIMEOUT_MINUTES.
const StuckDeploymentTimeout = 30 * time.Minute

// AcquireLock takes an exclusive, advisory lock on the store's lock file
// using O_CREATE|O_EXCL, which atomically fails if the file already
// exists. This upgrades the original's check-then-write race on the
// status file (read Status, decide, write Status, with no guard against
// another process doing the same between the read and the write) to a
// single atomic filesystem operation. A lock held longer than
// StuckDeploymentTimeout is assumed to belong to a crashed process and is
// taken over rather than honored.
func (s *Store) AcquireLock() *smerrors.SmartMonitoringError {
	if err := os.MkdirAll(filepath.Dir(s.lockFile), 0o755); err != nil {
		return smerrors.Internal("failed to create state directory", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, createErr := os.OpenFile(s.lockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if createErr == nil {
			fmt.Fprintf(f, "%d\n%s\n", os.Getpid(), s.now().Format(timeLayout))
			f.Close()
			return nil
		}
		if !os.IsExist(createErr) {
			return smerrors.Internal("failed to acquire deployment lock", createErr)
		}

		heldSince, since, staleErr := s.lockHeldSince()
		if staleErr != nil {
			// Lock file exists but can't be read/parsed; fail closed rather
			// than risk a concurrent takeover of a lock we can't account for.
			return smerrors.DeploymentInProgress(since)
		}
		if s.now().Sub(heldSince) <= StuckDeploymentTimeout {
			return smerrors.DeploymentInProgress(since)
		}
		os.Remove(s.lockFile)
	}
	return smerrors.Internal("failed to acquire deployment lock after stale takeover", nil)
}

// ReleaseLock drops the advisory lock. Safe to call even if this process
// never successfully acquired it.
func (s *Store) ReleaseLock() {
	os.Remove(s.lockFile)
}

// lockHeldSince reads the timestamp stamped into the lock file by the
// process currently holding it.
func (s *Store) lockHeldSince() (t time.Time, raw string, err error) {
	data, err := os.ReadFile(s.lockFile)
	if err != nil {
		return time.Time{}, "", err
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return time.Time{}, "", fmt.Errorf("malformed lock file %s", s.lockFile)
	}
	t, err = time.ParseInLocation(timeLayout, lines[1], s.now().Location())
	return t, lines[1], err
}
