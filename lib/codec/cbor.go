// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2). time.Time values carry tag 1 so they decode
// back as tagged items rather than bare integers.
var encMode cbor.EncMode

// orderedEncMode shares encMode's options except that map keys are
// not sorted, so struct fields keep their declaration order.
var orderedEncMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown struct keys are silently ignored for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	options := cbor.CoreDetEncOptions()
	options.TimeTag = cbor.EncTagRequired
	encMode, err = options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	orderedOptions := options
	orderedOptions.Sort = cbor.SortNone
	orderedEncMode, err = orderedOptions.EncMode()
	if err != nil {
		panic("codec: ordered CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Applies only when a whole value is decoded into any. The
		// CBOR default is map[interface{}]interface{}, which
		// encoding/json cannot handle. Struct decoding (including
		// keyasint fields) and typed map targets are unaffected;
		// hashlink decodes experimental metadata item by item through
		// RawMessage so non-string keys survive there.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// MarshalOrdered encodes v to CBOR without sorting map keys. Struct
// fields are written in declaration order.
func MarshalOrdered(v any) ([]byte, error) {
	return orderedEncMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Trailing bytes after the first
// data item are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Tag is a CBOR tagged data item (major type 6). Unregistered tags
// decode to this type when the target is any. Type alias so consumers
// import only lib/codec, not fxamacker/cbor directly.
type Tag = cbor.Tag

// RawMessage is an undecoded CBOR data item. Decoding into a
// RawMessage copies the item's bytes; encoding writes them unchanged.
type RawMessage = cbor.RawMessage

// RawTag is a tag number with undecoded content.
type RawTag = cbor.RawTag

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
