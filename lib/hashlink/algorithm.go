// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"fmt"

	"github.com/multiformats/go-multihash"
)

// Algorithm identifies a digest function by its multihash code.
type Algorithm uint64

const (
	// SHA256 is SHA2-256, multihash code 0x12. The only implemented
	// algorithm.
	SHA256 = Algorithm(multihash.SHA2_256)

	// SHA512 is SHA2-512, multihash code 0x13. Defined by the hashlink
	// algorithm registry but not implemented: construction fails with
	// ErrUnsupportedAlgorithm and digest segments carrying it fail
	// with ErrUnknownAlgorithm.
	SHA512 = Algorithm(multihash.SHA2_512)
)

// ParseAlgorithm returns the Algorithm for a multihash name such as
// "sha2-256". Names outside the enumeration are an error; names inside
// it are returned even when not implemented, so that the failure
// surfaces at construction with ErrUnsupportedAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch code := multihash.Names[name]; Algorithm(code) {
	case SHA256, SHA512:
		return Algorithm(code), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}

// String returns the multihash name ("sha2-256"), or a hex code for
// values outside the multihash table.
func (a Algorithm) String() string {
	if name, ok := multihash.Codes[uint64(a)]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint64(a))
}

// Implemented reports whether links can be built and verified with a.
func (a Algorithm) Implemented() bool {
	return a == SHA256
}

// sum returns the multihash of data under a. The header is always
// self-consistent: the length byte equals the digest size the function
// produced.
func (a Algorithm) sum(data []byte) (multihash.Multihash, error) {
	if !a.Implemented() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, a)
	}
	return multihash.Sum(data, uint64(a), -1)
}
