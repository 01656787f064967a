// Package guard serializes work that targets the same file-system location.
//
// A Guard combines two layers keyed by the same target:
//   - an in-process semaphore, so goroutines in one process never interleave
//   - a file lock (gofrs/flock) in a shared lock directory, so separate
//     processes (the CLI and a running MCP server) never interleave
//
// In ModeWait a second caller blocks until the first releases the target or
// its context ends. In ModeReject a second caller fails with ErrInFlight.
package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// ErrInFlight indicates another extraction currently holds the target.
var ErrInFlight = errors.New("another extraction is in progress for this target")

// Mode selects how a held target is handled.
type Mode string

const (
	ModeWait   Mode = "wait"
	ModeReject Mode = "reject"
)

// Config configures a Guard.
type Config struct {
	Mode       Mode
	LockDir    string        // empty means DefaultLockDir()
	RetryDelay time.Duration // poll interval for the file lock in ModeWait
	Timeout    time.Duration // zero means wait until the context ends
}

// DefaultLockDir returns <os temp dir>/ngcomp/locks.
func DefaultLockDir() string {
	return filepath.Join(os.TempDir(), "ngcomp", "locks")
}

type slot struct {
	sem  chan struct{}
	refs int
}

// Guard is a keyed mutual-exclusion guard. The zero value is not usable;
// use New.
type Guard struct {
	cfg Config

	mu    sync.Mutex
	slots map[string]*slot
}

// New creates a Guard.
func New(cfg Config) *Guard {
	if cfg.Mode == "" {
		cfg.Mode = ModeWait
	}
	if cfg.LockDir == "" {
		cfg.LockDir = DefaultLockDir()
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 50 * time.Millisecond
	}
	return &Guard{
		cfg:   cfg,
		slots: make(map[string]*slot),
	}
}

// Acquire takes the guard for key. The returned func releases it.
func (g *Guard) Acquire(ctx context.Context, key string) (func() error, error) {
	key = filepath.Clean(key)

	if g.cfg.Mode == ModeWait && g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	s := g.join(key)
	if err := g.enter(ctx, s, key); err != nil {
		g.leave(key, s)
		return nil, err
	}

	lock, err := g.lockFile(ctx, key)
	if err != nil {
		<-s.sem
		g.leave(key, s)
		return nil, err
	}

	var once sync.Once
	release := func() error {
		var unlockErr error
		once.Do(func() {
			unlockErr = lock.Unlock()
			<-s.sem
			g.leave(key, s)
		})
		return unlockErr
	}
	return release, nil
}

// join registers interest in key and returns its slot.
func (g *Guard) join(key string) *slot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.slots[key]
	if !ok {
		s = &slot{sem: make(chan struct{}, 1)}
		g.slots[key] = s
	}
	s.refs++
	return s
}

// leave drops interest in key, removing the slot once unused.
func (g *Guard) leave(key string, s *slot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(g.slots, key)
	}
}

// enter takes the in-process semaphore for key.
func (g *Guard) enter(ctx context.Context, s *slot, key string) error {
	if g.cfg.Mode == ModeReject {
		select {
		case s.sem <- struct{}{}:
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrInFlight, key)
		}
	}

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for %s: %w", key, ctx.Err())
	}
}

// lockFile takes the cross-process file lock for key.
func (g *Guard) lockFile(ctx context.Context, key string) (*flock.Flock, error) {
	if err := os.MkdirAll(g.cfg.LockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	lock := flock.New(LockPath(g.cfg.LockDir, key))

	if g.cfg.Mode == ModeReject {
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", ErrInFlight, key)
		}
		return lock, nil
	}

	locked, err := lock.TryLockContext(ctx, g.cfg.RetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("timed out waiting for %s: %w", key, ctx.Err())
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("timed out waiting for %s: %w", key, context.DeadlineExceeded)
	}
	return lock, nil
}

// LockPath returns the lock file used for key inside lockDir.
//
// Example:
//
//	path := LockPath("/tmp/ngcomp/locks", "/src/app/user-card")
//	// Returns: /tmp/ngcomp/locks/<first 16 hex chars of sha256(key)>.lock
func LockPath(lockDir, key string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(key)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:])[:16]+".lock")
}
