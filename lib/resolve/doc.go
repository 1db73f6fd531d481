// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve provides [hashlink.Resolver] implementations for
// remote verification.
//
// [FileResolver] serves file:// URLs confined to a set of configured
// root directories. It never touches the network: URLs with any other
// scheme fail with [ErrUnsupportedScheme], so a link whose metadata
// lists an https:// mirror ahead of a local copy falls through to the
// local copy.
package resolve
