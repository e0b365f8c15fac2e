package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mgr, err := NewManager(Config{
		Secret:   "test-signing-secret",
		Issuer:   "elizatrader-service",
		Audience: "elizatrader-admin",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	return mgr
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	token, jti, err := mgr.Generator.Generate("admin@elizabethtrader.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := mgr.Verifier.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "admin@elizabethtrader.com", claims.Identifier)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.True(t, claims.IsAdmin())
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestManager_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	mgr.Generator.Ttl = -time.Minute

	token, _, err := mgr.Generator.Generate("admin@elizabethtrader.com", "admin")
	require.NoError(t, err)

	_, err = mgr.Verifier.Verify(token)
	require.Error(t, err)
}

func TestManager_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	token, _, err := mgr.Generator.Generate("admin@elizabethtrader.com", "admin")
	require.NoError(t, err)

	other := NewVerifier([]byte("some-other-secret"), "elizatrader-service", "elizatrader-admin")
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestManager_WrongAudienceRejected(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	token, _, err := mgr.Generator.Generate("admin@elizabethtrader.com", "admin")
	require.NoError(t, err)

	other := NewVerifier([]byte("test-signing-secret"), "elizatrader-service", "some-other-audience")
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestManager_WrongIssuerRejected(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)

	token, _, err := mgr.Generator.Generate("admin@elizabethtrader.com", "admin")
	require.NoError(t, err)

	other := NewVerifier([]byte("test-signing-secret"), "some-other-issuer", "elizatrader-admin")
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestManager_GarbageTokenRejected(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t)
	_, err := mgr.Verifier.Verify("not-a-valid-jwt")
	require.Error(t, err)
}

func TestNewManager_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewManager(Config{Secret: "", TTL: time.Hour})
	require.Error(t, err)

	_, err = NewManager(Config{Secret: "s", TTL: 0})
	require.Error(t, err)
}

func TestClaims_IsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Claims{Role: "admin"}).IsAdmin())
	assert.False(t, (&Claims{Role: "viewer"}).IsAdmin())
	assert.False(t, (&Claims{}).IsAdmin())
}
