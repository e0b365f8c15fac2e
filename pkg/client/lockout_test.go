package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(path string) (*LockoutGuard, *time.Time) {
	g := NewLockoutGuard(path)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestLockoutGuard_LocksAfterThreeFailures(t *testing.T) {
	t.Parallel()

	g, _ := newTestGuard("")

	require.NoError(t, g.Check())
	g.RecordFailure()
	require.NoError(t, g.Check())
	g.RecordFailure()
	require.NoError(t, g.Check())
	g.RecordFailure()

	err := g.Check()
	require.Error(t, err)
	assert.True(t, IsLocked(err))

	var le *LockedError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, lockDuration, le.Remaining)
	assert.Contains(t, le.Error(), "30 seconds")
}

func TestLockoutGuard_CooldownExpires(t *testing.T) {
	t.Parallel()

	g, now := newTestGuard("")
	for i := 0; i < 3; i++ {
		g.RecordFailure()
	}
	require.Error(t, g.Check())

	*now = now.Add(29 * time.Second)
	err := g.Check()
	require.Error(t, err)
	var le *LockedError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, time.Second, le.Remaining)

	*now = now.Add(2 * time.Second)
	require.NoError(t, g.Check())

	// The expired cooldown also cleared the attempt counter: two more
	// failures are tolerated before locking again.
	g.RecordFailure()
	g.RecordFailure()
	require.NoError(t, g.Check())
	g.RecordFailure()
	require.Error(t, g.Check())
}

func TestLockoutGuard_SuccessResetsCounter(t *testing.T) {
	t.Parallel()

	g, _ := newTestGuard("")
	g.RecordFailure()
	g.RecordFailure()
	g.RecordSuccess()

	g.RecordFailure()
	g.RecordFailure()
	require.NoError(t, g.Check())
}

func TestLockoutGuard_StatePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lockout.json")

	g, now := newTestGuard(path)
	for i := 0; i < 3; i++ {
		g.RecordFailure()
	}
	require.Error(t, g.Check())

	// A fresh guard reading the same file is still locked.
	g2 := NewLockoutGuard(path)
	g2.now = g.now
	err := g2.Check()
	require.Error(t, err)
	assert.True(t, IsLocked(err))

	*now = now.Add(lockDuration + time.Second)
	require.NoError(t, g2.Check())
}

func TestLockoutGuard_MissingStateFileStartsFresh(t *testing.T) {
	t.Parallel()

	g := NewLockoutGuard(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, g.Check())
}
