// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import "fmt"

// headerSize is the length of the multihash header in a digest
// segment: one byte of algorithm code, one byte of digest length.
const headerSize = 2

// ParseDigestSegment decodes a digest segment (the text between the
// first and second separators) and returns the raw digest. Failures
// are *DecodeError values wrapping ErrInvalidMultibase, ErrTruncated,
// ErrUnknownAlgorithm, or ErrLengthMismatch.
func ParseDigestSegment(text string) ([]byte, error) {
	_, digest, err := parseDigestSegment(text)
	return digest, err
}

func parseDigestSegment(text string) (Encoding, []byte, error) {
	encoding, raw, err := decodeSegment(text)
	if err != nil {
		return 0, nil, &DecodeError{Segment: "digest", Err: err}
	}
	if len(raw) < headerSize {
		return 0, nil, &DecodeError{Segment: "digest", Err: fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))}
	}

	code, length, digest := raw[0], raw[1], raw[headerSize:]
	if !Algorithm(code).Implemented() {
		return 0, nil, &DecodeError{Segment: "digest", Err: fmt.Errorf("%w: %s", ErrUnknownAlgorithm, Algorithm(code))}
	}
	if int(length) != len(digest) {
		return 0, nil, &DecodeError{
			Segment: "digest",
			Err:     fmt.Errorf("%w: header declares %d bytes, segment has %d", ErrLengthMismatch, length, len(digest)),
		}
	}
	return encoding, digest, nil
}
