// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/supplement"
)

func supplementCommand() *cli.Command {
	return &cli.Command{
		Name:    "supplement",
		Summary: "Verify credential supplements",
		Subcommands: []*cli.Command{
			supplementVerifyCommand(),
		},
	}
}

type supplementVerifyParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Attributes []string `json:"attributes" flag:"attr" desc:"revealed attribute NAME=VALUE (repeatable)"`
}

func supplementVerifyCommand() *cli.Command {
	var params supplementVerifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check hashlink-data supplements against their attachments",
		Description: `Read a credential record (JSON with "supplements" and "~attach") from
a file or stdin. For every hashlink-data supplement, the attribute its
"field" names must be revealed with --attr and hold a hash-link over the
referenced attachment.

Exits 1 when any supplement fails.`,
		Usage: "hashlink supplement verify [flags] [record.json]",
		Examples: []cli.Example{
			{
				Description: "Verify a player picture attachment",
				Command:     "hashlink supplement verify --attr 0_player_picture=hl:zQm... record.json",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("supplement verify takes at most one file, got %d arguments", len(args))
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			revealed, err := parseAttributes(params.Attributes)
			if err != nil {
				return err
			}
			input, source, err := openInput(path, os.Stdin)
			if err != nil {
				return err
			}
			defer input.Close()

			record, err := readRecord(input, source)
			if err != nil {
				return err
			}
			result, err := supplement.VerifyHashlinks(revealed, record, logger)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(os.Stdout, result); done {
				if err != nil {
					return err
				}
			} else {
				writeSupplementResult(os.Stdout, result)
			}
			if !result.OK() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// parseAttributes turns NAME=VALUE entries into a map. VALUE may
// itself contain '=' and ':'.
func parseAttributes(entries []string) (map[string]string, error) {
	revealed := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("--attr %q: want NAME=VALUE", entry)
		}
		revealed[name] = value
	}
	return revealed, nil
}

func readRecord(r io.Reader, source string) (supplement.Record, error) {
	var record supplement.Record
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return supplement.Record{}, fmt.Errorf("parsing record from %s: %w", source, err)
	}
	return record, nil
}

func writeSupplementResult(w io.Writer, result supplement.Result) {
	for _, id := range result.Verified {
		fmt.Fprintf(w, "OK        %s\n", id)
	}
	for _, failure := range result.Failed {
		if failure.Attribute != "" {
			fmt.Fprintf(w, "MISMATCH  %s (%s): %s\n", failure.SupplementID, failure.Attribute, failure.Reason)
		} else {
			fmt.Fprintf(w, "MISMATCH  %s: %s\n", failure.SupplementID, failure.Reason)
		}
	}
}
