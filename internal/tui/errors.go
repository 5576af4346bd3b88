// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package tui

import (
	"errors"
	"strings"

	"github.com/homefront-community/homefront/internal/adapter"
)

// humanizeError turns transport and backend failures into a short message a
// person in a terminal can act on. Unknown errors pass through verbatim.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Wrong email or password, or your session expired"
	case errors.Is(err, adapter.ErrForbidden):
		return "You do not have permission to do that"
	case errors.Is(err, adapter.ErrNotFound):
		return "Not found, it may have been removed"
	case errors.Is(err, adapter.ErrConflict):
		return "An account with this email already exists"
	case errors.Is(err, adapter.ErrBadGateway), errors.Is(err, adapter.ErrInternalServerError):
		return "The server is having trouble, try again in a minute"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network, or the server is unreachable"
	}

	return err.Error()
}
