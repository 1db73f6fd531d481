// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// hashlink creates, verifies, and inspects cryptographic hash-links
// (hl:<digest>[:<metadata>]).
//
// Subcommands:
//
//   - create -- build a link for a file or stdin, with optional URL,
//     content-type, and experimental metadata
//   - verify -- check content against a link; exits 1 on mismatch
//   - inspect -- decode a link's digest and metadata, including the
//     metadata's CBOR diagnostic notation
//   - metadata encode / decode -- work with the metadata segment alone
//   - supplement verify -- check the hashlink-data supplements of a
//     credential record
//   - version -- print build information
//
// Every command accepts --config (or HASHLINK_CONFIG) for defaults and
// --verbose for debug logging on stderr.
package main
