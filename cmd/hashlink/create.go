// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

type createParams struct {
	cli.ConfigParams
	cli.JSONOutput
	linkParams
	metadataParams
}

// createResult is the JSON form of a newly created link.
type createResult struct {
	Link      string             `json:"link"`
	Algorithm string             `json:"algorithm"`
	Encoding  string             `json:"encoding"`
	Digest    string             `json:"digest"`
	Source    string             `json:"source"`
	Metadata  *hashlink.Metadata `json:"metadata,omitempty"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a hash-link for a file or stdin",
		Description: `Hash the content of a file (or stdin when no file is given) and print
its hash-link.

Metadata is optional. --url may be repeated; URLs keep the order given.
--experimental KEY=VALUE entries go under the experimental metadata key;
VALUE is parsed as JSON when possible (42, true, {"a":1}) and kept as a
string otherwise.

The algorithm and encoding default to the configuration's link section.`,
		Usage: "hashlink create [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Link a file with a download URL and content type",
				Command:     "hashlink create --url http://example.org/hw.txt --content-type text/plain hw.txt",
			},
			{
				Description: "Link stdin using base64url",
				Command:     "echo -n 'Hello World!' | hashlink create -e base64url",
			},
			{
				Description: "Attach experimental metadata",
				Command:     "hashlink create -x build=42 -x channel=stable release.tar.gz",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("create takes at most one file, got %d arguments", len(args))
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			algorithm, encoding, err := params.resolve(cfg)
			if err != nil {
				return err
			}
			metadata, err := params.metadata()
			if err != nil {
				return err
			}

			input, source, err := openInput(path, os.Stdin)
			if err != nil {
				return err
			}
			defer input.Close()

			result, err := createLink(input, source, algorithm, encoding, metadata)
			if err != nil {
				return err
			}
			logger.Debug("created hashlink",
				"source", source,
				"algorithm", result.Algorithm,
				"encoding", result.Encoding,
				"digest", result.Digest,
			)

			if done, err := params.EmitJSON(os.Stdout, result); done {
				return err
			}
			fmt.Println(result.Link)
			return nil
		},
	}
}

// createLink hashes input and assembles the link text.
func createLink(input io.Reader, source string, algorithm hashlink.Algorithm, encoding hashlink.Encoding, metadata hashlink.Metadata) (createResult, error) {
	link, err := hashlink.FromReader(algorithm, encoding, input, metadata)
	if err != nil {
		return createResult{}, fmt.Errorf("hashing %s: %w", source, err)
	}
	text, err := link.Text()
	if err != nil {
		return createResult{}, err
	}

	result := createResult{
		Link:      text,
		Algorithm: link.Algorithm().String(),
		Encoding:  link.Encoding().String(),
		Digest:    hex.EncodeToString(link.Digest()),
		Source:    source,
	}
	if linkMetadata := link.Metadata(); !linkMetadata.IsZero() {
		result.Metadata = &linkMetadata
	}
	return result, nil
}
