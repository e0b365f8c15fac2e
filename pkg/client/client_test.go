package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		var req struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "good-password" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid credentials"})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "login successful",
			"data": map[string]any{
				"token":     "test-token",
				"expiresAt": time.Now().Add(time.Hour).Format(time.RFC3339),
				"user":      map[string]string{"identifier": req.Identifier, "role": "admin"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Login_Success(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newLoginServer(t, &hits)
	c := NewClient(srv.URL, "")

	res, err := c.Login(context.Background(), "admin@elizabethtrader.com", "good-password")
	require.NoError(t, err)

	assert.Equal(t, "test-token", res.Token)
	assert.Equal(t, "admin@elizabethtrader.com", res.User.Identifier)
	assert.Equal(t, "admin", res.User.Role)
	assert.Equal(t, "test-token", c.token)
}

func TestClient_Login_LockoutStopsRequests(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newLoginServer(t, &hits)
	c := NewClient(srv.URL, "")

	for i := 0; i < 3; i++ {
		_, err := c.Login(context.Background(), "admin@elizabethtrader.com", "bad-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.EqualValues(t, 3, hits.Load())

	// The fourth attempt is rejected locally and never reaches the server,
	// even with correct credentials.
	_, err := c.Login(context.Background(), "admin@elizabethtrader.com", "good-password")
	require.Error(t, err)
	assert.True(t, IsLocked(err))
	assert.EqualValues(t, 3, hits.Load())
}

func TestClient_Login_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newLoginServer(t, &hits)
	c := NewClient(srv.URL, "")

	for i := 0; i < 2; i++ {
		_, err := c.Login(context.Background(), "admin@elizabethtrader.com", "bad-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := c.Login(context.Background(), "admin@elizabethtrader.com", "good-password")
	require.NoError(t, err)

	// The slate is clean: two more bad attempts do not lock.
	for i := 0; i < 2; i++ {
		_, err := c.Login(context.Background(), "admin@elizabethtrader.com", "bad-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.EqualValues(t, 5, hits.Load())
}

func TestClient_ListPosts(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "education", r.URL.Query().Get("category"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"posts": []map[string]any{
				{"id": 1, "title": "Reading candlestick charts", "isPublished": true},
			},
			"pagination": map[string]any{
				"currentPage": 2, "totalPages": 3, "totalPosts": 25,
				"hasNext": true, "hasPrev": true,
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	list, err := c.ListPosts(context.Background(), 2, "education", "")
	require.NoError(t, err)

	require.Len(t, list.Posts, 1)
	assert.Equal(t, "Reading candlestick charts", list.Posts[0].Title)
	assert.Equal(t, 2, list.Pagination.CurrentPage)
	assert.True(t, list.Pagination.HasNext)
}

func TestClient_LikePost(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/posts/7/like", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "likes": 12})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")
	likes, err := c.LikePost(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 12, likes)
}
