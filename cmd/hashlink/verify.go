// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/config"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
	"github.com/bureau-foundation/hashlink/lib/resolve"
)

type verifyParams struct {
	cli.ConfigParams
	cli.JSONOutput
	Remote bool `json:"remote" flag:"remote" desc:"fetch content from the link's metadata URLs instead of a file"`
}

// verifyResult is the JSON form of a verification verdict.
type verifyResult struct {
	Link     string `json:"link"`
	Source   string `json:"source"`
	Verified bool   `json:"verified"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check content against a hash-link",
		Description: `Check that a file (or stdin) hashes to the digest in LINK. Prints OK or
MISMATCH and exits 1 on mismatch. A malformed link is a mismatch; the
reason is logged.

With --remote, the content is fetched from the link's metadata URLs in
order, through the file:// resolver configured in the resolve section.
Other URL schemes are skipped. The first URL that resolves decides.`,
		Usage: "hashlink verify [flags] LINK [file]",
		Examples: []cli.Example{
			{
				Description: "Verify a file",
				Command:     "hashlink verify hl:zQmWvQxTqbG2Z9HPJgG57jjwR154cKhbtJenbyYTWkjgF3e hw.txt",
			},
			{
				Description: "Verify against the URLs in the link's metadata",
				Command:     "hashlink verify --remote --config hashlink.yaml \"$LINK\"",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("LINK is required")
			}
			if len(args) > 2 {
				return fmt.Errorf("verify takes LINK and at most one file, got %d arguments", len(args))
			}
			link := args[0]

			var result verifyResult
			if params.Remote {
				if len(args) == 2 {
					return fmt.Errorf("--remote takes no file argument")
				}
				cfg, err := params.LoadConfig()
				if err != nil {
					return err
				}
				result, err = verifyRemote(ctx, link, fileResolver(cfg, logger))
				if err != nil {
					return err
				}
			} else {
				var path string
				if len(args) == 2 {
					path = args[1]
				}
				input, source, err := openInput(path, os.Stdin)
				if err != nil {
					return err
				}
				defer input.Close()
				result = verifyLocal(link, input, source, logger)
			}

			if done, err := params.EmitJSON(os.Stdout, result); done {
				if err != nil {
					return err
				}
			} else if result.Verified {
				fmt.Println("OK")
			} else {
				fmt.Println("MISMATCH")
			}
			if !result.Verified {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// verifyLocal checks content read from input. Structural problems with
// the link are logged; they count as a mismatch.
func verifyLocal(link string, input io.Reader, source string, logger *slog.Logger) verifyResult {
	if _, err := hashlink.Parse(link); err != nil {
		logger.Warn("hashlink did not parse", "link", link, "error", err)
	}
	verified := hashlink.VerifyReader(link, input)
	logger.Debug("verified content", "link", link, "source", source, "verified", verified)
	return verifyResult{Link: link, Source: source, Verified: verified}
}

// verifyRemote checks content fetched through resolver.
func verifyRemote(ctx context.Context, link string, resolver hashlink.Resolver) (verifyResult, error) {
	verified, err := hashlink.VerifyRemote(ctx, link, resolver)
	if err != nil {
		return verifyResult{}, fmt.Errorf("remote verification: %w", err)
	}
	return verifyResult{Link: link, Source: "remote", Verified: verified}, nil
}

// fileResolver builds the file:// resolver from the resolve section.
// With no roots configured there is nothing to resolve against, which
// hashlink.VerifyRemote reports as ErrRemoteUnsupported.
func fileResolver(cfg *config.Config, logger *slog.Logger) hashlink.Resolver {
	if len(cfg.Resolve.Roots) == 0 {
		return nil
	}
	return &resolve.FileResolver{
		Roots:   cfg.Resolve.Roots,
		MaxSize: cfg.Resolve.MaxSize,
		Logger:  logger,
	}
}
