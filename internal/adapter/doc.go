// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

// Package adapter provides the transport layer for communicating with the
// homefront backend.
//
// The primary abstraction is [Gateway], which decouples the session and UI
// layers from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPGateway]) built on resty.
//
// The backend base URL is not known until the resolver package has completed
// its runtime-configuration lookup, so every outbound request first awaits
// [resolver.Resolver.Ensure]. Resolution is memoized; after the first request
// this is a cheap in-memory read.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter
