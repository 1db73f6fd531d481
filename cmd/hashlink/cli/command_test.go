// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func noop(context.Context, []string, *slog.Logger) error { return nil }

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "hashlink",
		Subcommands: []*Command{
			{
				Name: "create",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "create"
					return nil
				},
			},
			{
				Name: "verify",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "verify"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"verify"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "verify" {
		t.Errorf("dispatched to %q, want %q", called, "verify")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "hashlink",
		Subcommands: []*Command{
			{
				Name: "metadata",
				Subcommands: []*Command{
					{
						Name: "decode",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "metadata decode"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"metadata", "decode", "zabc"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "metadata decode" {
		t.Errorf("dispatched to %q, want %q", called, "metadata decode")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "zabc" {
		t.Errorf("args = %v, want [zabc]", receivedArgs)
	}
}

func TestCommand_Execute_ParamsParsing(t *testing.T) {
	type params struct {
		Encoding string   `flag:"encoding,e" default:"base58btc"`
		URL      []string `flag:"url"`
	}
	var p params
	var target string

	command := &Command{
		Name:   "create",
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{
		"-e", "base64url",
		"--url", "https://a.example/x?a=1,2",
		"--url", "file:///srv/x",
		"payload.bin",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if p.Encoding != "base64url" {
		t.Errorf("Encoding = %q, want base64url", p.Encoding)
	}
	if len(p.URL) != 2 || p.URL[0] != "https://a.example/x?a=1,2" || p.URL[1] != "file:///srv/x" {
		t.Errorf("URL = %q, want two entries with commas preserved", p.URL)
	}
	if target != "payload.bin" {
		t.Errorf("target = %q, want payload.bin", target)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	type params struct {
		ContentType string `flag:"content-type"`
		Remote      bool   `flag:"remote"`
	}
	var p params

	command := &Command{
		Name:   "verify",
		Params: func() any { return &p },
		Run:    noop,
	}

	err := command.Execute(context.Background(), []string{"--remtoe"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --remote?") {
		t.Errorf("error = %q, want suggestion for --remote", err.Error())
	}
	if !strings.Contains(err.Error(), "Run 'verify --help' for usage.") {
		t.Errorf("error = %q, want help hint", err.Error())
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "hashlink",
		Subcommands: []*Command{
			{Name: "create", Run: noop},
			{Name: "inspect", Run: noop},
		},
	}

	err := root.Execute(context.Background(), []string{"inpsect"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "inspect"?`) {
		t.Errorf("error = %q, want suggestion for inspect", err.Error())
	}

	err = root.Execute(context.Background(), []string{"frobnicate"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want unknown command without suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "metadata",
		Subcommands: []*Command{{Name: "encode", Run: noop}},
	}
	err := root.Execute(context.Background(), nil)
	if err == nil || err.Error() != "subcommand required" {
		t.Errorf("error = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	called := false
	command := &Command{
		Name: "verify",
		Run: func(context.Context, []string, *slog.Logger) error {
			called = true
			return nil
		},
	}
	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		if err := command.Execute(context.Background(), args); err != nil {
			t.Errorf("Execute(%v) error: %v", args, err)
		}
	}
	if called {
		t.Error("Run called for a help request")
	}
}

func TestCommand_Execute_RunErrorPropagates(t *testing.T) {
	want := &ExitError{Code: 1}
	command := &Command{
		Name: "verify",
		Run: func(context.Context, []string, *slog.Logger) error {
			return want
		},
	}
	err := command.Execute(context.Background(), nil)
	var exitError *ExitError
	if !errors.As(err, &exitError) || exitError.ExitCode() != 1 {
		t.Errorf("error = %v, want ExitError code 1", err)
	}
}

func TestCommand_Execute_LoggerProvided(t *testing.T) {
	var received *slog.Logger
	root := &Command{
		Name: "hashlink",
		Subcommands: []*Command{{
			Name: "version",
			Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
				received = logger
				return nil
			},
		}},
	}
	if err := root.Execute(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if received == nil {
		t.Fatal("Run received a nil logger")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		JSONOutput
		URL []string `flag:"url" desc:"metadata URL (repeatable)"`
	}
	var p params

	root := &Command{Name: "hashlink"}
	command := &Command{
		Name:        "create",
		Summary:     "Create a hash-link",
		Description: "Create a hash-link for a file or stdin.",
		Usage:       "hashlink create [flags] [file]",
		Params:      func() any { return &p },
		Examples: []Example{
			{Description: "Link a file", Command: "hashlink create hw.txt"},
		},
		Run:    noop,
		parent: root,
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{
		"Create a hash-link for a file or stdin.",
		"Usage:\n  hashlink create [flags] [file]",
		"--url",
		"metadata URL (repeatable)",
		"--json",
		"# Link a file",
		"hashlink create hw.txt",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_Path(t *testing.T) {
	root := &Command{Name: "hashlink"}
	metadata := &Command{Name: "metadata", parent: root}
	decode := &Command{Name: "decode", parent: metadata}

	if got := decode.path(); got != "metadata/decode" {
		t.Errorf("path() = %q, want metadata/decode", got)
	}
	if got := decode.fullName(); got != "hashlink metadata decode" {
		t.Errorf("fullName() = %q, want hashlink metadata decode", got)
	}
	if got := root.path(); got != "hashlink" {
		t.Errorf("root path() = %q, want hashlink", got)
	}
}
