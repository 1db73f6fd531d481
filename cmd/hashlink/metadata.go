// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

func metadataCommand() *cli.Command {
	return &cli.Command{
		Name:    "metadata",
		Summary: "Encode or decode a metadata segment",
		Description: `Work with the metadata segment (the text after the second ':') on its
own. The segment is a multibase-framed CBOR map with key 15 (URLs, each
tagged 32), key 14 (content type), and key 13 (experimental map).`,
		Subcommands: []*cli.Command{
			metadataEncodeCommand(),
			metadataDecodeCommand(),
		},
	}
}

type metadataEncodeParams struct {
	cli.ConfigParams
	metadataParams
	Encoding string `json:"encoding" flag:"encoding,e" desc:"multibase encoding (default from config: base58btc)"`
}

func metadataEncodeCommand() *cli.Command {
	var params metadataEncodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Build a metadata segment from flags",
		Usage:   "hashlink metadata encode [flags]",
		Examples: []cli.Example{
			{
				Description: "Encode the reference example's metadata",
				Command:     "hashlink metadata encode --url http://example.org/hw.txt --content-type text/plain",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("encode takes no positional arguments, got %q", args[0])
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			encoding, err := hashlink.ParseEncoding(cmp.Or(params.Encoding, cfg.Link.Encoding))
			if err != nil {
				return err
			}
			metadata, err := params.metadata()
			if err != nil {
				return err
			}

			segment, err := hashlink.EncodeMetadata(metadata, encoding)
			if errors.Is(err, hashlink.ErrNoMetadata) {
				return fmt.Errorf("no metadata given: use --url, --content-type, or --experimental")
			}
			if err != nil {
				return err
			}
			fmt.Println(segment)
			return nil
		},
	}
}

type metadataDecodeParams struct {
	cli.ConfigParams
}

func metadataDecodeCommand() *cli.Command {
	var params metadataDecodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a metadata segment to JSON",
		Description: `Decode a metadata segment and print it as JSON. Unknown CBOR keys are
dropped; URLs are printed without their tag.`,
		Usage: "hashlink metadata decode SEGMENT",
		Examples: []cli.Example{
			{
				Description: "Decode the reference example's metadata",
				Command:     "hashlink metadata decode zuh8iaLobXC8g9tfma1CSTtYBakXeSTkHrYA5hmD4F7dCLw8XYwZ1GWyJ3zwF",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("decode takes exactly one SEGMENT, got %d arguments", len(args))
			}
			metadata, err := hashlink.DecodeMetadata(args[0])
			if err != nil {
				return err
			}
			return cli.WriteJSON(os.Stdout, metadata)
		},
	}
}
