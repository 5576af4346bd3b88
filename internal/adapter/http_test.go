// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homefront-community/homefront/internal/config"
	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/internal/resolver"
	"github.com/homefront-community/homefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGateway builds an httpGateway whose resolver settles directly on the
// test server URL (no runtime document involved).
func newTestGateway(t *testing.T, serverURL string) *httpGateway {
	t.Helper()
	res := resolver.New(config.ClientApp{APIBaseURL: serverURL}, 5*time.Second, logger.Nop())
	g := NewHTTPGateway(config.ClientAdapter{RequestTimeout: 5 * time.Second}, res, logger.Nop())
	return g.(*httpGateway)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	token, err := g.Login(context.Background(), "user@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token.AccessToken)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("incorrect email or password"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Login(context.Background(), "user@example.com", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegister_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new@example.com", req.Email)
		assert.Equal(t, "Dana", req.FullName)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	err := g.Register(context.Background(), models.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret",
		FullName: "Dana",
	})

	require.NoError(t, err)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("email already registered"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	err := g.Register(context.Background(), models.RegisterRequest{Email: "new@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── CurrentUser ──────────────────────────────────────────────────────────────

func TestCurrentUser_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"email":"user@example.com","is_admin":"1"}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "tok-123" })

	payload, err := g.CurrentUser(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, int64(1), payload.ID)
	assert.Equal(t, "1", payload.IsAdmin)
}

func TestCurrentUser_CacheBustHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		assert.NotEmpty(t, r.URL.Query().Get("_"))

		_, _ = w.Write([]byte(`{"id":1,"email":"user@example.com"}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "tok-123" })

	_, err := g.CurrentUser(context.Background(), true)
	require.NoError(t, err)
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "stale" })

	_, err := g.CurrentUser(context.Background(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Listings ─────────────────────────────────────────────────────────────────

func TestListings_BareArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apartments", r.URL.Path)
		// Listings are public; no Authorization header expected.
		assert.Empty(t, r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[{"id":1,"title":"2BR in Haifa"},{"id":2,"title":"Studio in Tel Aviv"}]`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	items, err := g.Listings(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2BR in Haifa", items[0].Title)
}

func TestListings_EnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apartments":[{"id":7,"title":"Room in Beer Sheva"}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	items, err := g.Listings(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
}

func TestListings_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":3}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Listings(context.Background())

	require.Error(t, err)
}

// ── Apply / Notifications ────────────────────────────────────────────────────

func TestApply_PostsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apartments/5/apply", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "I am interested", body["message"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":11,"apartment_id":5,"status":"pending"}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "tok" })

	application, err := g.Apply(context.Background(), 5, "I am interested")

	require.NoError(t, err)
	assert.Equal(t, int64(11), application.ID)
	assert.Equal(t, "pending", application.Status)
}

func TestMarkNotificationRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications/3/read", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "tok" })

	require.NoError(t, g.MarkNotificationRead(context.Background(), 3))
}

// ── Admin ────────────────────────────────────────────────────────────────────

func TestDeleteAdminUser_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("admin privileges required"))
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetTokenSource(func() string { return "tok" })

	err := g.DeleteAdminUser(context.Background(), 9)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}
