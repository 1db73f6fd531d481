// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/multiformats/go-multihash"
)

// Verify reports whether data is the content committed to by link. A
// nil data is the empty byte sequence, so Verify(link, nil) is true
// exactly when link commits to empty content.
//
// Verify is total: malformed links, links naming an unimplemented
// algorithm, and links whose length header is inconsistent all return
// false, the same as a well-formed link that does not match. The
// metadata segment does not participate. Use Parse to find out why a
// link was rejected.
func Verify(link string, data []byte) bool {
	digest, ok := linkDigest(link)
	if !ok {
		return false
	}
	candidate, err := SHA256.sum(data)
	if err != nil {
		return false
	}
	return bytes.Equal(candidate[headerSize:], digest)
}

// VerifyReader is Verify for content read from r. A nil r is the empty
// byte sequence. A read error returns false.
func VerifyReader(link string, r io.Reader) bool {
	digest, ok := linkDigest(link)
	if !ok {
		return false
	}
	if r == nil {
		r = bytes.NewReader(nil)
	}
	candidate, err := multihash.SumStream(r, uint64(SHA256), -1)
	if err != nil {
		return false
	}
	return bytes.Equal(candidate[headerSize:], digest)
}

// linkDigest extracts the raw digest from link, discarding the reason
// on failure.
func linkDigest(link string) ([]byte, bool) {
	digestSegment, _, err := splitLink(link)
	if err != nil {
		return nil, false
	}
	_, digest, err := parseDigestSegment(digestSegment)
	if err != nil {
		return nil, false
	}
	return digest, true
}

// splitLink checks the scheme and returns the digest segment and the
// metadata segment ("" when absent).
func splitLink(link string) (string, string, error) {
	parts := strings.Split(link, Separator)
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", &DecodeError{Segment: "link", Err: fmt.Errorf("%w: %d segments", ErrMalformedLink, len(parts))}
	}
	if parts[0] != Scheme {
		return "", "", &DecodeError{Segment: "link", Err: fmt.Errorf("%w: %q", ErrInvalidScheme, parts[0])}
	}
	if parts[1] == "" || (len(parts) == 3 && parts[2] == "") {
		return "", "", &DecodeError{Segment: "link", Err: fmt.Errorf("%w: empty segment", ErrMalformedLink)}
	}
	if len(parts) == 2 {
		return parts[1], "", nil
	}
	return parts[1], parts[2], nil
}

// Parsed is the decoded form of a hash-link string.
type Parsed struct {
	Algorithm Algorithm
	Encoding  Encoding
	Digest    []byte

	// Metadata is the zero value when the link has no metadata
	// segment.
	Metadata Metadata
}

// Parse decodes every segment of link and reports the first structural
// problem as a *DecodeError. Unlike Verify, Parse also decodes the
// metadata segment and requires it to share the digest segment's
// encoding.
func Parse(link string) (*Parsed, error) {
	digestSegment, metadataSegment, err := splitLink(link)
	if err != nil {
		return nil, err
	}
	encoding, digest, err := parseDigestSegment(digestSegment)
	if err != nil {
		return nil, err
	}
	parsed := &Parsed{Algorithm: SHA256, Encoding: encoding, Digest: digest}
	if metadataSegment == "" {
		return parsed, nil
	}

	metadataEncoding, metadata, err := decodeMetadata(metadataSegment)
	if err != nil {
		return nil, err
	}
	if metadataEncoding != encoding {
		return nil, &DecodeError{
			Segment: "metadata",
			Err:     fmt.Errorf("%w: digest is %s, metadata is %s", ErrMixedEncoding, encoding, metadataEncoding),
		}
	}
	parsed.Metadata = metadata
	return parsed, nil
}

// Matches reports whether data hashes to the parsed digest. A nil data
// is the empty byte sequence.
func (p *Parsed) Matches(data []byte) bool {
	candidate, err := p.Algorithm.sum(data)
	if err != nil {
		return false
	}
	return bytes.Equal(candidate[headerSize:], p.Digest)
}
