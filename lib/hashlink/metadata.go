// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bureau-foundation/hashlink/lib/codec"
)

// uriTag is the CBOR tag number for a URI text string (RFC 8949 §3.4.5.3).
const uriTag = 32

// Metadata is the optional integrity-adjacent data carried in a
// hash-link's third segment. Empty fields are absent: they are never
// encoded, and a Metadata with every field empty produces no metadata
// segment at all.
type Metadata struct {
	// URL lists locations the linked content can be fetched from, in
	// preference order. Encoded under key 15 as an array of tag-32 URIs.
	URL []string `json:"url,omitempty"`

	// ContentType is the media type of the linked content. Encoded
	// under key 14 as a text string.
	ContentType string `json:"content-type,omitempty"`

	// Experimental carries arbitrary key/value data under key 13.
	Experimental Experimental `json:"experimental,omitempty"`
}

// IsZero reports whether m has no fields present.
func (m Metadata) IsZero() bool {
	return len(m.URL) == 0 && m.ContentType == "" && len(m.Experimental) == 0
}

// clone returns a copy of m. Containers the decoder produces are copied
// at every depth; other reference values supplied by a caller are
// shared.
func (m Metadata) clone() Metadata {
	return Metadata{
		URL:          slices.Clone(m.URL),
		ContentType:  m.ContentType,
		Experimental: m.Experimental.clone(),
	}
}

// wireMetadata is the CBOR layout of the metadata map. Field order is
// the wire order: MarshalOrdered emits keys 15, 14, 13 exactly as
// declared here, which is what the hashlink reference vectors expect.
// Keys other than these three are dropped on decode.
type wireMetadata struct {
	URL          []uri         `cbor:"15,keyasint,omitempty"`
	ContentType  string        `cbor:"14,keyasint,omitempty"`
	Experimental *Experimental `cbor:"13,keyasint,omitempty"`
}

func (m Metadata) toWire() wireMetadata {
	wire := wireMetadata{ContentType: m.ContentType}
	for _, url := range m.URL {
		wire.URL = append(wire.URL, uri(url))
	}
	if len(m.Experimental) > 0 {
		wire.Experimental = &m.Experimental
	}
	return wire
}

func (w wireMetadata) toMetadata() Metadata {
	var metadata Metadata
	for _, url := range w.URL {
		metadata.URL = append(metadata.URL, string(url))
	}
	metadata.ContentType = w.ContentType
	if w.Experimental != nil && len(*w.Experimental) > 0 {
		metadata.Experimental = *w.Experimental
	}
	return metadata
}

// uri is a URL string that encodes as CBOR tag 32. It is the only
// tagged value the metadata codec produces or interprets.
type uri string

// MarshalCBOR encodes u as tag 32 wrapping a text string.
func (u uri) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(codec.Tag{Number: uriTag, Content: string(u)})
}

// UnmarshalCBOR accepts a tag-32 text string, and also a bare text
// string from encoders that omit the tag.
func (u *uri) UnmarshalCBOR(data []byte) error {
	var value any
	if err := codec.Unmarshal(data, &value); err != nil {
		return err
	}
	switch typed := value.(type) {
	case string:
		*u = uri(typed)
		return nil
	case codec.Tag:
		if text, ok := typed.Content.(string); ok && typed.Number == uriTag {
			*u = uri(text)
			return nil
		}
		return fmt.Errorf("url entry has tag %d, want %d", typed.Number, uriTag)
	default:
		return fmt.Errorf("url entry is %T, want URI text", value)
	}
}

// Experimental is the key/value data under metadata key 13. Keys and
// values keep their CBOR types across a round trip: text keys decode as
// string, unsigned integers as uint64, negative integers as int64, byte
// strings as []byte, arrays as []any, and tagged items (including
// dates, tags 0 and 1) as codec.Tag. A nested map decodes as
// map[string]any when every key is text and as map[any]any otherwise.
// Tag-32 URIs are the exception: they decode to plain strings.
type Experimental map[any]any

// MarshalCBOR encodes e with Core Deterministic Encoding. Nested maps
// have no declared order, so sorted keys keep link text reproducible.
func (e Experimental) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(map[any]any(e))
}

// UnmarshalCBOR decodes a CBOR map of any key types, then unwraps tag-32
// URIs at every depth.
func (e *Experimental) UnmarshalCBOR(data []byte) error {
	values, err := decodeExperimental(data)
	if err != nil {
		return err
	}
	for key, value := range values {
		values[key] = unwrapURIs(value)
	}
	*e = values
	return nil
}

// MarshalJSON renders e for JSON output. JSON objects only have text
// keys, so non-string keys are formatted with fmt.Sprint.
func (e Experimental) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue(map[any]any(e)))
}

// UnmarshalJSON reads a JSON object. Numbers decode as float64.
func (e *Experimental) UnmarshalJSON(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if values == nil {
		*e = nil
		return nil
	}
	*e = make(Experimental, len(values))
	for key, value := range values {
		(*e)[key] = value
	}
	return nil
}

func (e Experimental) clone() Experimental {
	if e == nil {
		return nil
	}
	clone := make(Experimental, len(e))
	for key, value := range e {
		clone[key] = cloneValue(value)
	}
	return clone
}

// snapshot returns a copy of e that shares nothing with the caller's
// data, produced by encoding e and decoding the result. The copy
// encodes to the same bytes as e.
func (e Experimental) snapshot() (Experimental, error) {
	if len(e) == 0 {
		return nil, nil
	}
	data, err := e.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("encoding experimental metadata: %w", err)
	}
	return decodeExperimental(data)
}

// decodeExperimental decodes a CBOR map entry by entry. No tag is
// interpreted, so the result re-encodes to the input bytes.
func decodeExperimental(data []byte) (Experimental, error) {
	var entries map[any]codec.RawMessage
	if err := codec.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	values := make(Experimental, len(entries))
	for key, raw := range entries {
		value, err := decodeItem(raw)
		if err != nil {
			return nil, fmt.Errorf("experimental key %v: %w", key, err)
		}
		values[key] = value
	}
	return values, nil
}

// CBOR major types that decodeItem descends into.
const (
	majorArray = 4
	majorMap   = 5
	majorTag   = 6
)

// decodeItem decodes one CBOR data item. Arrays, maps and tags are
// walked here rather than by the decoder, so that map keys of any type
// and tags the decoder would otherwise convert (0 and 1 into time.Time,
// 2 and 3 into big.Int) come back as they were written.
func decodeItem(data codec.RawMessage) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data item")
	}
	switch data[0] >> 5 {
	case majorArray:
		var items []codec.RawMessage
		if err := codec.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		values := make([]any, len(items))
		for index, item := range items {
			value, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			values[index] = value
		}
		return values, nil

	case majorMap:
		var entries map[any]codec.RawMessage
		if err := codec.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		return decodeMap(entries)

	case majorTag:
		var tag codec.RawTag
		if err := codec.Unmarshal(data, &tag); err != nil {
			return nil, err
		}
		content, err := decodeItem(tag.Content)
		if err != nil {
			return nil, err
		}
		return codec.Tag{Number: tag.Number, Content: content}, nil

	default:
		var value any
		if err := codec.Unmarshal(data, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// decodeMap returns map[string]any when every key is text, and
// map[any]any otherwise.
func decodeMap(entries map[any]codec.RawMessage) (any, error) {
	textKeys := true
	for key := range entries {
		if _, ok := key.(string); !ok {
			textKeys = false
			break
		}
	}

	if textKeys {
		values := make(map[string]any, len(entries))
		for key, raw := range entries {
			value, err := decodeItem(raw)
			if err != nil {
				return nil, err
			}
			values[key.(string)] = value
		}
		return values, nil
	}

	values := make(map[any]any, len(entries))
	for key, raw := range entries {
		value, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// unwrapURIs replaces tag-32 text values with their content. Other
// tags pass through with their content unwrapped in turn.
func unwrapURIs(value any) any {
	switch typed := value.(type) {
	case codec.Tag:
		if text, ok := typed.Content.(string); ok && typed.Number == uriTag {
			return text
		}
		typed.Content = unwrapURIs(typed.Content)
		return typed
	case map[string]any:
		for key, nested := range typed {
			typed[key] = unwrapURIs(nested)
		}
		return typed
	case map[any]any:
		for key, nested := range typed {
			typed[key] = unwrapURIs(nested)
		}
		return typed
	case []any:
		for index, nested := range typed {
			typed[index] = unwrapURIs(nested)
		}
		return typed
	default:
		return value
	}
}

// cloneValue copies the container types decodeItem produces.
func cloneValue(value any) any {
	switch typed := value.(type) {
	case Experimental:
		return typed.clone()
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for key, nested := range typed {
			clone[key] = cloneValue(nested)
		}
		return clone
	case map[any]any:
		clone := make(map[any]any, len(typed))
		for key, nested := range typed {
			clone[key] = cloneValue(nested)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for index, nested := range typed {
			clone[index] = cloneValue(nested)
		}
		return clone
	case []byte:
		return bytes.Clone(typed)
	case codec.Tag:
		return codec.Tag{Number: typed.Number, Content: cloneValue(typed.Content)}
	default:
		return value
	}
}

// jsonValue converts value into something encoding/json accepts.
func jsonValue(value any) any {
	switch typed := value.(type) {
	case Experimental:
		return jsonValue(map[any]any(typed))
	case map[any]any:
		object := make(map[string]any, len(typed))
		for key, nested := range typed {
			object[fmt.Sprint(key)] = jsonValue(nested)
		}
		return object
	case map[string]any:
		object := make(map[string]any, len(typed))
		for key, nested := range typed {
			object[key] = jsonValue(nested)
		}
		return object
	case []any:
		array := make([]any, len(typed))
		for index, nested := range typed {
			array[index] = jsonValue(nested)
		}
		return array
	case codec.Tag:
		return codec.Tag{Number: typed.Number, Content: jsonValue(typed.Content)}
	default:
		return value
	}
}

// EncodeMetadata serializes m to its CBOR form and frames it with enc.
// Returns ErrNoMetadata when m has no fields present; callers use that
// to decide whether a metadata segment exists at all.
func EncodeMetadata(m Metadata, enc Encoding) (string, error) {
	if m.IsZero() {
		return "", ErrNoMetadata
	}
	data, err := codec.MarshalOrdered(m.toWire())
	if err != nil {
		return "", fmt.Errorf("encoding metadata: %w", err)
	}
	return enc.encode(data)
}

// DecodeMetadata reverses EncodeMetadata. Failures are *DecodeError
// values wrapping ErrMetadataDecode.
func DecodeMetadata(text string) (Metadata, error) {
	_, metadata, err := decodeMetadata(text)
	return metadata, err
}

// decodeMetadata also reports the segment's encoding, which Parse
// compares against the digest segment's.
func decodeMetadata(text string) (Encoding, Metadata, error) {
	encoding, data, err := decodeSegment(text)
	if err != nil {
		return 0, Metadata{}, &DecodeError{Segment: "metadata", Err: fmt.Errorf("%w: %w", ErrMetadataDecode, err)}
	}
	var wire wireMetadata
	if err := codec.Unmarshal(data, &wire); err != nil {
		return 0, Metadata{}, &DecodeError{Segment: "metadata", Err: fmt.Errorf("%w: %w", ErrMetadataDecode, err)}
	}
	return encoding, wire.toMetadata(), nil
}
