// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

// Package client implements the interactive client application runtime.
//
// It wires configuration, the API base resolver, the HTTP gateway, local
// storage, the session manager, the notification poller, and the terminal
// UI into a single process lifecycle.
package client
