// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supplement

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Supplement types.
const (
	TypeHashlinkData     = "hashlink-data"
	TypeIssuerCredential = "issuer-credential"
)

// FieldKey is the attribute key whose value names the credential
// attribute a hashlink-data supplement describes.
const FieldKey = "field"

var (
	// ErrInvalidType is returned for supplement types outside the
	// TypeHashlinkData / TypeIssuerCredential pair.
	ErrInvalidType = errors.New("invalid supplement type")

	// ErrMissingRef is returned for a supplement with no attachment
	// reference.
	ErrMissingRef = errors.New("supplement has no attachment reference")

	// ErrInvalidID is returned when a supplement ID is not a UUID.
	ErrInvalidID = errors.New("supplement id is not a UUID")
)

// Attribute is one key/value pair of supplement detail.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Supplement describes one attachment of a credential.
type Supplement struct {
	Type  string      `json:"type"`
	ID    string      `json:"id,omitempty"`
	Ref   string      `json:"ref"`
	Attrs []Attribute `json:"attrs,omitempty"`
}

// New returns a validated Supplement with a random UUIDv4 ID.
func New(supplementType, ref string, attrs ...Attribute) (Supplement, error) {
	supplement := Supplement{
		Type:  supplementType,
		ID:    uuid.NewString(),
		Ref:   ref,
		Attrs: attrs,
	}
	if err := supplement.Validate(); err != nil {
		return Supplement{}, err
	}
	return supplement, nil
}

// Validate checks the type, reference, and (when present) ID.
func (s Supplement) Validate() error {
	var errs []error
	switch s.Type {
	case TypeHashlinkData, TypeIssuerCredential:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidType, s.Type))
	}
	if s.Ref == "" {
		errs = append(errs, ErrMissingRef)
	}
	if s.ID != "" {
		if _, err := uuid.Parse(s.ID); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidID, s.ID))
		}
	}
	return errors.Join(errs...)
}

// Attribute returns the value of the first attribute with key.
func (s Supplement) Attribute(key string) (string, bool) {
	for _, attr := range s.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Attachment is a named blob of credential data. Data is base64 in
// JSON.
type Attachment struct {
	ID       string `json:"@id"`
	MimeType string `json:"mime-type,omitempty"`
	Data     []byte `json:"data"`
}

// Record is the set of supplements and attachments that arrived with
// one credential.
type Record struct {
	Supplements []Supplement `json:"supplements,omitempty"`
	Attachments []Attachment `json:"~attach,omitempty"`
}

// Validate validates every supplement.
func (r Record) Validate() error {
	var errs []error
	for index, supplement := range r.Supplements {
		if err := supplement.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("supplement %d: %w", index, err))
		}
	}
	return errors.Join(errs...)
}

// AttachmentLookup maps attachment IDs to their data. When IDs repeat,
// the first attachment wins.
func (r Record) AttachmentLookup() map[string][]byte {
	lookup := make(map[string][]byte, len(r.Attachments))
	for _, attachment := range r.Attachments {
		if _, exists := lookup[attachment.ID]; !exists {
			lookup[attachment.ID] = attachment.Data
		}
	}
	return lookup
}

// Pair is a supplement joined with the attachment it references.
type Pair struct {
	Supplement Supplement
	Attachment Attachment

	// Attribute is the supplement's "field" value, or "" when absent.
	Attribute string
}

// Pairs joins each supplement with its referenced attachment.
// Supplements whose Ref matches no attachment are omitted.
func (r Record) Pairs() []Pair {
	byID := make(map[string]Attachment, len(r.Attachments))
	for _, attachment := range r.Attachments {
		if _, exists := byID[attachment.ID]; !exists {
			byID[attachment.ID] = attachment
		}
	}

	var pairs []Pair
	for _, supplement := range r.Supplements {
		attachment, ok := byID[supplement.Ref]
		if !ok {
			continue
		}
		field, _ := supplement.Attribute(FieldKey)
		pairs = append(pairs, Pair{Supplement: supplement, Attachment: attachment, Attribute: field})
	}
	return pairs
}
