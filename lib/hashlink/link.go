// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/multiformats/go-multihash"
)

const (
	// Scheme is the fixed scheme token of every hash-link.
	Scheme = "hl"

	// Separator delimits the scheme, digest, and metadata segments.
	Separator = ":"
)

// Link is a hash-link committing to one payload. A Link is immutable
// after construction and safe for concurrent use. Its text form is
// assembled on the first call to Text or String and cached; later
// calls return the cached value without recomputation.
type Link struct {
	algorithm Algorithm
	encoding  Encoding
	multihash multihash.Multihash
	metadata  Metadata

	// metadataErr is set when the experimental metadata could not be
	// encoded at construction. Text reports it.
	metadataErr error

	// text is the write-once cache cell for the assembled link.
	text func() (string, error)
}

// New digests payload with alg and returns a Link that frames the
// digest with enc. metadata may be the zero value for a link without a
// metadata segment.
//
// alg must be SHA256: any other algorithm fails with
// ErrUnsupportedAlgorithm before the payload is hashed.
func New(alg Algorithm, enc Encoding, payload []byte, metadata Metadata) (*Link, error) {
	if err := checkParameters(alg, enc); err != nil {
		return nil, err
	}
	digest, err := alg.sum(payload)
	if err != nil {
		return nil, fmt.Errorf("hashing payload: %w", err)
	}
	return newLink(alg, enc, digest, metadata), nil
}

// FromReader is New for payloads read from r, streamed through the
// digest without being held in memory.
func FromReader(alg Algorithm, enc Encoding, r io.Reader, metadata Metadata) (*Link, error) {
	if err := checkParameters(alg, enc); err != nil {
		return nil, err
	}
	digest, err := multihash.SumStream(r, uint64(alg), -1)
	if err != nil {
		return nil, fmt.Errorf("hashing payload: %w", err)
	}
	return newLink(alg, enc, digest, metadata), nil
}

func checkParameters(alg Algorithm, enc Encoding) error {
	if !alg.Implemented() {
		return fmt.Errorf("%w: %s (only %s is supported)", ErrUnsupportedAlgorithm, alg, SHA256)
	}
	return enc.validate()
}

func newLink(alg Algorithm, enc Encoding, digest multihash.Multihash, metadata Metadata) *Link {
	link := &Link{
		algorithm: alg,
		encoding:  enc,
		multihash: digest,
		metadata: Metadata{
			URL:         slices.Clone(metadata.URL),
			ContentType: metadata.ContentType,
		},
	}
	// The snapshot owns every nested value, so later changes to the
	// caller's maps cannot reach the lazily assembled text.
	link.metadata.Experimental, link.metadataErr = metadata.Experimental.snapshot()
	link.text = sync.OnceValues(link.assemble)
	return link
}

// assemble builds "hl:<digest>[:<metadata>]". Called at most once per
// Link, through the text cell.
func (l *Link) assemble() (string, error) {
	if l.metadataErr != nil {
		return "", l.metadataErr
	}
	digestSegment, err := l.encoding.encode(l.multihash)
	if err != nil {
		return "", fmt.Errorf("encoding digest segment: %w", err)
	}
	text := Scheme + Separator + digestSegment

	metadataSegment, err := EncodeMetadata(l.metadata, l.encoding)
	switch {
	case errors.Is(err, ErrNoMetadata):
		return text, nil
	case err != nil:
		return "", err
	}
	return text + Separator + metadataSegment, nil
}

// Text returns the hash-link string. The only possible error is a
// failure to encode experimental metadata values CBOR cannot represent
// (channels, functions); it is cached like the text itself.
func (l *Link) Text() (string, error) {
	return l.text()
}

// String returns the hash-link string, or "" when Text fails.
func (l *Link) String() string {
	text, err := l.text()
	if err != nil {
		return ""
	}
	return text
}

// Algorithm returns the digest algorithm.
func (l *Link) Algorithm() Algorithm { return l.algorithm }

// Encoding returns the multibase encoding of both segments.
func (l *Link) Encoding() Encoding { return l.encoding }

// Metadata returns a copy of the link's metadata. Experimental values
// come back in their decoded CBOR form (an int 1 reads back as
// uint64(1)), and are absent when they could not be encoded.
func (l *Link) Metadata() Metadata { return l.metadata.clone() }

// Multihash returns a copy of the framed digest: header followed by the
// raw digest bytes.
func (l *Link) Multihash() []byte { return bytes.Clone(l.multihash) }

// Digest returns a copy of the raw digest without the multihash header.
func (l *Link) Digest() []byte { return bytes.Clone(l.multihash[headerSize:]) }
