// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding modes used by hash-link
// metadata and the hashlink CLI.
//
// Two encoder modes exist because the hash-link wire format needs both:
//
//   - [Marshal] uses Core Deterministic Encoding (RFC 8949 §4.2):
//     sorted map keys, smallest integer encoding, no indefinite-length
//     items. Same logical data always produces identical bytes. Nested
//     caller-supplied maps (experimental metadata) go through this mode.
//   - [MarshalOrdered] uses the same preferred serialization but does
//     not sort: struct fields are emitted in declaration order. The
//     hash-link metadata map is defined with keys 15, 14, 13 in that
//     order, and reference vectors produced by other implementations
//     depend on it. Never pass a Go map to MarshalOrdered; map
//     iteration order is random.
//
// Both encoder modes write time.Time as tag 1 (epoch seconds).
//
// Decoding uses a single mode that accepts standard CBOR, decodes
// any-typed maps as map[string]any, and surfaces unregistered tags as
// [Tag] values so callers can intercept the tag numbers they care about.
// Callers that need every key type or every tag preserved decode item
// by item through [RawMessage] and [RawTag].
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// [Diagnose] renders RFC 8949 diagnostic notation for inspection
// tooling; unlike JSON it preserves integer keys and tag numbers.
package codec
