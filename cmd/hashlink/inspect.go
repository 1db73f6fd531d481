// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/multiformats/go-multibase"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/codec"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

type inspectParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

// inspectResult is the decoded form of a link.
type inspectResult struct {
	Link       string             `json:"link"`
	Algorithm  string             `json:"algorithm"`
	Encoding   string             `json:"encoding"`
	Digest     string             `json:"digest"`
	DigestSize int                `json:"digest_size"`
	Metadata   *hashlink.Metadata `json:"metadata,omitempty"`

	// MetadataDiagnostic is the metadata segment's CBOR in RFC 8949
	// diagnostic notation.
	MetadataDiagnostic string `json:"metadata_diagnostic,omitempty"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Decode a hash-link's digest and metadata",
		Description: `Decode LINK and print its algorithm, encoding, digest (hex), and
metadata. The metadata is also shown in CBOR diagnostic notation, which
preserves integer keys and the URI tag (32) exactly as encoded.

Fails with the decoding error when any segment is malformed.`,
		Usage: "hashlink inspect [flags] LINK",
		Examples: []cli.Example{
			{
				Description: "Inspect the reference example",
				Command:     "hashlink inspect hl:zQmWvQxTqbG2Z9HPJgG57jjwR154cKhbtJenbyYTWkjgF3e:zuh8iaLobXC8g9tfma1CSTtYBakXeSTkHrYA5hmD4F7dCLw8XYwZ1GWyJ3zwF",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("inspect takes exactly one LINK, got %d arguments", len(args))
			}

			result, err := inspectLink(args[0])
			if err != nil {
				return err
			}
			logger.Debug("inspected hashlink", "link", result.Link, "has_metadata", result.Metadata != nil)

			if done, err := params.EmitJSON(os.Stdout, result); done {
				return err
			}
			return writeInspection(os.Stdout, result)
		},
	}
}

// inspectLink decodes every segment of link.
func inspectLink(link string) (inspectResult, error) {
	parsed, err := hashlink.Parse(link)
	if err != nil {
		return inspectResult{}, err
	}

	result := inspectResult{
		Link:       link,
		Algorithm:  parsed.Algorithm.String(),
		Encoding:   parsed.Encoding.String(),
		Digest:     hex.EncodeToString(parsed.Digest),
		DigestSize: len(parsed.Digest),
	}

	segments := strings.Split(link, hashlink.Separator)
	if len(segments) < 3 {
		return result, nil
	}
	metadata := parsed.Metadata
	result.Metadata = &metadata

	// Parse has already decoded this segment once; decode the raw bytes
	// again for the diagnostic view.
	_, raw, err := multibase.Decode(segments[2])
	if err != nil {
		return inspectResult{}, fmt.Errorf("decoding metadata segment: %w", err)
	}
	result.MetadataDiagnostic, err = codec.Diagnose(raw)
	if err != nil {
		return inspectResult{}, fmt.Errorf("diagnosing metadata: %w", err)
	}
	return result, nil
}

// writeInspection prints result as aligned key/value lines.
func writeInspection(w io.Writer, result inspectResult) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "algorithm:\t%s\n", result.Algorithm)
	fmt.Fprintf(tw, "encoding:\t%s\n", result.Encoding)
	fmt.Fprintf(tw, "digest:\t%s (%d bytes)\n", result.Digest, result.DigestSize)

	if result.Metadata == nil {
		fmt.Fprintf(tw, "metadata:\t(none)\n")
		return tw.Flush()
	}
	for _, url := range result.Metadata.URL {
		fmt.Fprintf(tw, "url:\t%s\n", url)
	}
	if result.Metadata.ContentType != "" {
		fmt.Fprintf(tw, "content-type:\t%s\n", result.Metadata.ContentType)
	}
	if len(result.Metadata.Experimental) > 0 {
		experimental, err := json.Marshal(result.Metadata.Experimental)
		if err != nil {
			return fmt.Errorf("formatting experimental metadata: %w", err)
		}
		fmt.Fprintf(tw, "experimental:\t%s\n", experimental)
	}
	fmt.Fprintf(tw, "cbor:\t%s\n", result.MetadataDiagnostic)
	return tw.Flush()
}
