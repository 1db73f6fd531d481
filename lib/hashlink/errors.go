// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlgorithm is returned when a link is constructed
	// with an algorithm other than SHA2-256.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// ErrUnsupportedEncoding is returned for multibase encodings the
	// multibase library does not know, and for the identity encoding
	// (which is not printable).
	ErrUnsupportedEncoding = errors.New("unsupported multibase encoding")

	// ErrNoMetadata is returned by EncodeMetadata when every metadata
	// field is absent. Links without metadata have no metadata segment.
	ErrNoMetadata = errors.New("no metadata")

	// ErrInvalidMultibase is returned when a segment is not valid
	// multibase text.
	ErrInvalidMultibase = errors.New("invalid multibase text")

	// ErrTruncated is returned when a digest segment decodes to fewer
	// bytes than the two-byte multihash header.
	ErrTruncated = errors.New("digest segment shorter than multihash header")

	// ErrUnknownAlgorithm is returned when a digest segment's header
	// names an algorithm code this package does not implement.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrLengthMismatch is returned when a digest segment's declared
	// digest length differs from the number of digest bytes present.
	ErrLengthMismatch = errors.New("hash length does not match length header")

	// ErrMetadataDecode is returned when a metadata segment is not a
	// valid CBOR metadata map.
	ErrMetadataDecode = errors.New("malformed metadata")

	// ErrInvalidScheme is returned when a link does not start with
	// "hl:".
	ErrInvalidScheme = errors.New("not a hashlink scheme")

	// ErrMalformedLink is returned when a link does not split into two
	// or three separator-delimited segments.
	ErrMalformedLink = errors.New("malformed hashlink")

	// ErrMixedEncoding is returned when the digest and metadata
	// segments use different multibase encodings.
	ErrMixedEncoding = errors.New("digest and metadata segments use different encodings")

	// ErrRemoteUnsupported is returned by VerifyRemote when no Resolver
	// is available.
	ErrRemoteUnsupported = errors.New("remote verification not supported without a resolver")

	// ErrNoURLs is returned by VerifyRemote when the link carries no
	// metadata URLs to resolve.
	ErrNoURLs = errors.New("hashlink has no metadata URLs")
)

// DecodeError is a structural failure while decoding one segment of a
// hash-link. Segment is "digest", "metadata", or "link". The wrapped
// error is one or more of the sentinel errors above, so callers match
// with errors.Is and detect the structural category with errors.As.
type DecodeError struct {
	Segment string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hashlink: decoding %s segment: %v", e.Segment, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
