// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/version"
)

// rootCommand builds the complete hashlink command tree.
func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "hashlink",
		Description: `hashlink: cryptographic hash-links.

A hash-link (hl:<digest>[:<metadata>]) binds a resource to its SHA2-256
digest, optionally with CBOR metadata listing where the resource can be
fetched and what content type it has. Both segments are multibase text.`,
		Subcommands: []*cli.Command{
			createCommand(),
			verifyCommand(),
			inspectCommand(),
			metadataCommand(),
			supplementCommand(),
			versionCommand(),
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("version takes no arguments, got %q", args[0])
			}
			if done, err := params.EmitJSON(os.Stdout, version.Build()); done {
				return err
			}
			fmt.Printf("hashlink %s\n", version.Full())
			return nil
		},
	}
}
