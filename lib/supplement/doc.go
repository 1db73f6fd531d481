// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package supplement models the supplement and attachment records that
// accompany an issued credential, and verifies the hash-links they
// carry.
//
// A [Supplement] of type "hashlink-data" describes one attachment: its
// Ref names the attachment's @id, and its "field" attribute names the
// credential attribute whose revealed value is a hash-link over the
// attachment bytes. [VerifyHashlinks] checks every such pairing in a
// [Record] against a set of revealed attribute values.
package supplement
