// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bureau-foundation/hashlink/lib/config"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

// openInput returns the named file, or stdin when path is "" or "-".
// The returned name is used in log and JSON output.
func openInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return file, path, nil
}

// metadataParams are the flags that populate link metadata. Shared by
// create and metadata encode.
type metadataParams struct {
	URL          []string `json:"url"          flag:"url"            desc:"URL the content can be fetched from (repeatable, kept in order)"`
	ContentType  string   `json:"content_type" flag:"content-type"   desc:"media type of the content"`
	Experimental []string `json:"experimental" flag:"experimental,x" desc:"experimental KEY=VALUE entry (repeatable); VALUE is JSON when it parses, else a string"`
}

// metadata assembles the Metadata the flags describe.
func (p *metadataParams) metadata() (hashlink.Metadata, error) {
	metadata := hashlink.Metadata{
		URL:         p.URL,
		ContentType: p.ContentType,
	}
	for _, entry := range p.Experimental {
		key, raw, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return hashlink.Metadata{}, fmt.Errorf("--experimental %q: want KEY=VALUE", entry)
		}
		if metadata.Experimental == nil {
			metadata.Experimental = make(hashlink.Experimental)
		}
		metadata.Experimental[key] = parseValue(raw)
	}
	return metadata, nil
}

// parseValue interprets raw as a JSON value when it parses as one.
// Integers stay integers; anything that is not JSON is a string.
func parseValue(raw string) any {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil || decoder.More() {
		return raw
	}
	return normalizeNumbers(value)
}

// normalizeNumbers replaces json.Number values with int64 (or uint64,
// or float64 when not integral) so they encode as CBOR numbers.
func normalizeNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		if unsigned, err := strconv.ParseUint(typed.String(), 10, 64); err == nil {
			return unsigned
		}
		float, err := typed.Float64()
		if err != nil {
			return typed.String()
		}
		return float
	case map[string]any:
		for key, nested := range typed {
			typed[key] = normalizeNumbers(nested)
		}
		return typed
	case []any:
		for index, nested := range typed {
			typed[index] = normalizeNumbers(nested)
		}
		return typed
	default:
		return value
	}
}

// linkParams select the algorithm and encoding for a new link. Empty
// values fall back to the configuration.
type linkParams struct {
	Algorithm string `json:"algorithm" flag:"algorithm,a" desc:"hash algorithm (default from config: sha2-256)"`
	Encoding  string `json:"encoding"  flag:"encoding,e"  desc:"multibase encoding (default from config: base58btc)"`
}

func (p *linkParams) resolve(cfg *config.Config) (hashlink.Algorithm, hashlink.Encoding, error) {
	algorithm, err := hashlink.ParseAlgorithm(cmp.Or(p.Algorithm, cfg.Link.Algorithm))
	if err != nil {
		return 0, 0, err
	}
	encoding, err := hashlink.ParseEncoding(cmp.Or(p.Encoding, cfg.Link.Encoding))
	if err != nil {
		return 0, 0, err
	}
	return algorithm, encoding, nil
}
