// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"fmt"

	"github.com/multiformats/go-multibase"
)

// Encoding names a multibase text encoding. The leading character of
// every encoded segment identifies the encoding to a decoder, so the
// encoding never needs to be stored separately.
type Encoding multibase.Encoding

// Common encodings. Any other encoding known to go-multibase (except
// identity) is accepted via ParseEncoding.
const (
	Base58BTC = Encoding(multibase.Base58BTC)
	Base64URL = Encoding(multibase.Base64url)
	Base32    = Encoding(multibase.Base32)
	Base16    = Encoding(multibase.Base16)
)

// DefaultEncoding is the encoding used by the hashlink draft's
// examples.
const DefaultEncoding = Base58BTC

// ParseEncoding returns the Encoding for a multibase name such as
// "base58btc" or "base64url".
func ParseEncoding(name string) (Encoding, error) {
	encoding, ok := multibase.Encodings[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	result := Encoding(encoding)
	if err := result.validate(); err != nil {
		return 0, err
	}
	return result, nil
}

// String returns the multibase name of e.
func (e Encoding) String() string {
	if name, ok := multibase.EncodingToStr[multibase.Encoding(e)]; ok {
		return name
	}
	return fmt.Sprintf("multibase(%q)", rune(e))
}

// validate rejects encodings that cannot frame a link segment. The
// identity encoding copies raw bytes into the text, which is neither
// printable nor free of the ":" separator.
func (e Encoding) validate() error {
	if multibase.Encoding(e) == multibase.Identity {
		return fmt.Errorf("%w: identity", ErrUnsupportedEncoding)
	}
	if _, ok := multibase.EncodingToStr[multibase.Encoding(e)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, e)
	}
	return nil
}

// encode frames data as multibase text.
func (e Encoding) encode(data []byte) (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}
	text, err := multibase.Encode(multibase.Encoding(e), data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedEncoding, err)
	}
	return text, nil
}

// decodeSegment decodes multibase text, reporting which encoding the
// text declared.
func decodeSegment(text string) (Encoding, []byte, error) {
	encoding, data, err := multibase.Decode(text)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidMultibase, err)
	}
	if multibase.Encoding(encoding) == multibase.Identity {
		return 0, nil, fmt.Errorf("%w: identity encoding", ErrInvalidMultibase)
	}
	return Encoding(encoding), data, nil
}
