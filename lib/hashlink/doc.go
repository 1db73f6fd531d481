// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashlink implements cryptographic hash-links
// (draft-sporny-hashlink): short, self-describing strings that commit
// to a blob of bytes and let anyone later check that a candidate blob
// matches the commitment.
//
// A hash-link has the shape
//
//	hl:<digest>[:<metadata>]
//
// The digest segment is a multibase-encoded multihash: a two-byte
// header (algorithm code, digest length) followed by the raw digest.
// SHA2-256 (code 0x12, 32 bytes) is the only implemented algorithm;
// SHA2-512 is defined in the [Algorithm] enumeration so that adding it
// is a pure addition. The optional metadata segment is a
// multibase-encoded CBOR map with integer keys 15 (URLs, each a tag-32
// URI), 14 (content type), and 13 (experimental key/value data). Both
// segments use the same multibase encoding.
//
// The API has two layers:
//
//   - [New], [FromReader], [Link.Text]: build a link from payload bytes
//     and optional [Metadata]. The link text is assembled on first use
//     and cached for the life of the [Link].
//   - [Verify], [VerifyReader]: total boolean predicates. Malformed
//     links, unsupported algorithms, and non-matching data all return
//     false. Callers that need to tell these apart use the diagnostic
//     layer instead: [Parse], [ParseDigestSegment], and
//     [DecodeMetadata] return [*DecodeError] values wrapping sentinel
//     errors such as [ErrLengthMismatch] and [ErrUnknownAlgorithm].
//
// [VerifyRemote] checks a link against content fetched from the URLs in
// its metadata through a caller-supplied [Resolver]. This package ships
// no network resolver; calling VerifyRemote without one returns
// [ErrRemoteUnsupported] rather than quietly falling back to a local
// check.
//
// Everything here is pure computation over in-memory values. The
// package performs no I/O of its own, holds no global mutable state,
// and does not log.
package hashlink
