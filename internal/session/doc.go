// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

// Package session owns the client's authentication state.
//
// A [Manager] is the single source of truth for "who is logged in". It is
// created by the composition root and handed to consumers explicitly; there
// is no package-level singleton. The manager moves through three states:
//
//	Unknown        loading=true, no user (initial, before Bootstrap settles)
//	Anonymous      loading=false, no user
//	Authenticated  loading=false, user populated
//
// Bootstrap reconciles any persisted token into a definitive state exactly
// once per manager. Login and Logout drive the explicit transitions.
// Registration never touches session state.
//
// The manager is also the sole owner of the persisted bearer token. Other
// components never read the credential store directly; the transport layer
// obtains the token through [Manager.Token], installed as its token source
// by the composition root.
package session
