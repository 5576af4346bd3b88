// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/homefront-community/homefront/internal/config"
	"github.com/homefront-community/homefront/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(appCfg config.ClientApp) *Resolver {
	return New(appCfg, 5*time.Second, logger.Nop())
}

// ── NormalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare host gets https", input: "example.com", want: "https://example.com"},
		{name: "http unchanged", input: "http://example.com", want: "http://example.com"},
		{name: "https unchanged", input: "https://example.com", want: "https://example.com"},
		{name: "trailing slash trimmed", input: "https://example.com/", want: "https://example.com"},
		{name: "bare host with path", input: "backend.example.com/api", want: "https://backend.example.com/api"},
		{name: "surrounding whitespace", input: "  example.com ", want: "https://example.com"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.input))
		})
	}
}

// ── Ensure: runtime document ─────────────────────────────────────────────────

func TestEnsure_RuntimeOverrideWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config.json", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.NotEmpty(t, r.URL.Query().Get("_"), "expected cache-busting query param")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"api_url":"runtime.example.com"}`))
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "fallback.example.com"})

	got := r.Ensure(context.Background())
	assert.Equal(t, "https://runtime.example.com", got)
}

func TestEnsure_NotFoundFallsBackToBuildTimeValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "fallback.example.com"})

	assert.Equal(t, "https://fallback.example.com", r.Ensure(context.Background()))
}

func TestEnsure_MalformedDocumentFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "http://fallback.example.com"})

	assert.Equal(t, "http://fallback.example.com", r.Ensure(context.Background()))
}

func TestEnsure_EmptyOverrideFieldFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"api_url":""}`))
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "fallback.example.com"})

	assert.Equal(t, "https://fallback.example.com", r.Ensure(context.Background()))
}

func TestEnsure_UnreachableOriginFallsBack(t *testing.T) {
	// A closed server yields a transport error rather than a status code.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "fallback.example.com"})

	assert.Equal(t, "https://fallback.example.com", r.Ensure(context.Background()))
}

func TestEnsure_NoSourcesYieldsLocalDefault(t *testing.T) {
	r := newTestResolver(config.ClientApp{})

	assert.Equal(t, defaultBaseURL, r.Ensure(context.Background()))
}

// ── Ensure: idempotence ──────────────────────────────────────────────────────

// TestEnsure_ConcurrentCallsShareOneFetch verifies that N concurrent Ensure
// calls trigger at most one runtime-document fetch and all observe the same
// resolved URL.
func TestEnsure_ConcurrentCallsShareOneFetch(t *testing.T) {
	var fetches atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL, APIBaseURL: "fallback.example.com"})

	const callers = 16
	results := make([]string, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Ensure(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), fetches.Load(), "runtime document must be fetched at most once")
	for _, got := range results {
		require.Equal(t, "https://fallback.example.com", got)
	}
}

func TestEnsure_SecondCallDoesNotRefetch(t *testing.T) {
	var fetches atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte(`{"api_url":"https://runtime.example.com"}`))
	}))
	defer srv.Close()

	r := newTestResolver(config.ClientApp{Origin: srv.URL})

	first := r.Ensure(context.Background())
	second := r.Ensure(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), fetches.Load())
}
