// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

// Package resolver determines the backend base URL at process start.
//
// The deployed backend address can change without the client being rebuilt:
// the deployment serves a small runtime configuration document at
// GET {origin}/config.json, which takes priority over the build-time value.
// Resolution happens at most once per [Resolver]; every caller of
// [Resolver.Ensure] observes the identical result.
package resolver

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/homefront-community/homefront/internal/config"
	"github.com/homefront-community/homefront/internal/logger"
)

// defaultBaseURL is the local-development backend used when neither the
// runtime document nor the build-time value supplies an address.
const defaultBaseURL = "http://localhost:8000"

// runtimeDocument is the shape of the optional config.json override served
// from the deployment origin. api_url is the only field the client reads.
type runtimeDocument struct {
	APIBaseURL string `json:"api_url"`
}

// Resolver resolves the backend base URL exactly once and memoizes the
// result. It is safe for concurrent use: simultaneous Ensure calls share a
// single underlying resolution attempt.
type Resolver struct {
	origin   string
	fallback string
	client   *resty.Client
	log      *logger.Logger

	once    sync.Once
	baseURL string
}

// New constructs a Resolver from the client application settings. timeout
// bounds the optional runtime-document fetch; the fallback path involves no
// network traffic.
func New(appCfg config.ClientApp, timeout time.Duration, log *logger.Logger) *Resolver {
	return &Resolver{
		origin:   strings.TrimRight(strings.TrimSpace(appCfg.Origin), "/"),
		fallback: appCfg.APIBaseURL,
		client:   resty.New().SetTimeout(timeout),
		log:      log,
	}
}

// Ensure returns the resolved backend base URL, performing resolution on the
// first call. It never fails: the worst outcome is the local-development
// default. Concurrent callers block until the single resolution attempt
// completes and then all observe the same value.
func (r *Resolver) Ensure(ctx context.Context) string {
	r.once.Do(func() {
		r.baseURL = r.resolve(ctx)
		r.log.Debug().Str("base_url", r.baseURL).Msg("backend base url resolved")
	})
	return r.baseURL
}

func (r *Resolver) resolve(ctx context.Context) string {
	if override := r.fetchRuntimeOverride(ctx); override != "" {
		return NormalizeBaseURL(override)
	}

	if r.fallback != "" {
		return NormalizeBaseURL(r.fallback)
	}

	return defaultBaseURL
}

// fetchRuntimeOverride retrieves {origin}/config.json, bypassing intermediary
// caches. Any failure (transport error, non-2xx status, malformed body,
// empty api_url) is reported as "no override": the runtime document is an
// optional deployment convenience, never a hard dependency.
func (r *Resolver) fetchRuntimeOverride(ctx context.Context) string {
	if r.origin == "" {
		return ""
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache").
		SetQueryParam("_", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		Get(r.origin + "/config.json")
	if err != nil {
		r.log.Warn().Err(err).Msg("runtime config document unreachable")
		return ""
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		r.log.Debug().Int("status", resp.StatusCode()).Msg("runtime config document not served")
		return ""
	}

	var doc runtimeDocument
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		r.log.Warn().Err(err).Msg("runtime config document malformed")
		return ""
	}

	return strings.TrimSpace(doc.APIBaseURL)
}

// NormalizeBaseURL ensures the value carries an explicit transport scheme.
// Bare hostnames are treated as should-be-secure and prefixed with https://,
// since a schemeless value would otherwise be interpreted as a relative path.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return raw
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	return raw
}
