package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	maxAttempts  = 3
	lockDuration = 30 * time.Second
)

// LockedError is returned when the guard rejects a login attempt locally,
// before any request is sent.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	secs := int(e.Remaining.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("too many failed login attempts, try again in %d seconds", secs)
}

type lockState struct {
	Attempts  int       `json:"attempts"`
	LockUntil time.Time `json:"lockUntil,omitzero"`
}

// LockoutGuard tracks consecutive failed login attempts across the whole
// process and enforces a short cooldown after too many of them. State is
// persisted to a JSON file so the cooldown survives restarts.
type LockoutGuard struct {
	mu    sync.Mutex
	path  string
	now   func() time.Time
	state lockState
}

// NewLockoutGuard loads any persisted state from path. An empty path keeps
// the guard in-memory only. A missing or unreadable state file starts fresh.
func NewLockoutGuard(path string) *LockoutGuard {
	g := &LockoutGuard{path: path, now: time.Now}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(data, &g.state)
		}
	}
	return g
}

// Check returns a *LockedError while the cooldown is active. Once the
// cooldown expires the attempt counter is cleared.
func (g *LockoutGuard) Check() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.LockUntil.IsZero() {
		return nil
	}
	now := g.now()
	if now.Before(g.state.LockUntil) {
		return &LockedError{Remaining: g.state.LockUntil.Sub(now)}
	}
	g.state = lockState{}
	g.persist()
	return nil
}

// RecordFailure counts a rejected credential attempt. The third consecutive
// failure starts the cooldown.
func (g *LockoutGuard) RecordFailure() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.Attempts++
	if g.state.Attempts >= maxAttempts {
		g.state.LockUntil = g.now().Add(lockDuration)
	}
	g.persist()
}

// RecordSuccess clears the attempt counter and any pending cooldown.
func (g *LockoutGuard) RecordSuccess() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = lockState{}
	g.persist()
}

func (g *LockoutGuard) persist() {
	if g.path == "" {
		return
	}
	data, err := json.Marshal(g.state)
	if err != nil {
		return
	}
	_ = os.WriteFile(g.path, data, 0o600)
}

// IsLocked reports whether err is a lockout rejection.
func IsLocked(err error) bool {
	var le *LockedError
	return errors.As(err, &le)
}
