// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supplement

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

// Failure records why one hashlink-data supplement did not verify.
type Failure struct {
	SupplementID string `json:"supplement_id"`
	Attribute    string `json:"attribute,omitempty"`
	Reason       string `json:"reason"`
}

// Result is the outcome of VerifyHashlinks.
type Result struct {
	// Verified lists the IDs of supplements whose hash-link matched.
	Verified []string `json:"verified"`

	// Failed lists the supplements that did not verify.
	Failed []Failure `json:"failed"`
}

// OK reports whether no supplement failed.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// VerifyHashlinks checks each hashlink-data supplement in record. The
// supplement's "field" attribute names an entry in revealed whose value
// is a hash-link; the link must verify against the attachment the
// supplement references. Supplements of other types are skipped.
//
// Per-supplement problems (missing attachment, missing field, no
// revealed value, mismatch) are reported in the Result. The error is
// non-nil only when the record itself is invalid.
func VerifyHashlinks(revealed map[string]string, record Record, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := record.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid record: %w", err)
	}

	attachments := record.AttachmentLookup()
	result := Result{Verified: []string{}, Failed: []Failure{}}
	fail := func(supplement Supplement, field, reason string) {
		logger.Warn("hashlink supplement failed verification",
			"supplement", supplement.ID,
			"ref", supplement.Ref,
			"attribute", field,
			"reason", reason,
		)
		result.Failed = append(result.Failed, Failure{SupplementID: supplement.ID, Attribute: field, Reason: reason})
	}

	for _, supplement := range record.Supplements {
		if supplement.Type != TypeHashlinkData {
			logger.Debug("skipping supplement", "supplement", supplement.ID, "type", supplement.Type)
			continue
		}

		data, ok := attachments[supplement.Ref]
		if !ok {
			fail(supplement, "", fmt.Sprintf("attachment %q not found", supplement.Ref))
			continue
		}
		field, ok := supplement.Attribute(FieldKey)
		if !ok || field == "" {
			fail(supplement, "", fmt.Sprintf("no %q attribute", FieldKey))
			continue
		}
		link, ok := revealed[field]
		if !ok {
			fail(supplement, field, "attribute not revealed")
			continue
		}

		if !hashlink.Verify(link, data) {
			reason := "hashlink does not match attachment"
			var decodeError *hashlink.DecodeError
			if _, err := hashlink.Parse(link); errors.As(err, &decodeError) && decodeError.Segment != "metadata" {
				reason = err.Error()
			}
			fail(supplement, field, reason)
			continue
		}

		logger.Debug("hashlink supplement verified",
			"supplement", supplement.ID,
			"ref", supplement.Ref,
			"attribute", field,
		)
		result.Verified = append(result.Verified, supplement.ID)
	}
	return result, nil
}
