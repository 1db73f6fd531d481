// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger on stderr. When stderr
// is a terminal, uses slog.TextHandler for human-readable output;
// when piped or redirected, slog.JSONHandler for machine-parseable
// output.
func NewCommandLogger(level slog.Level) *slog.Logger {
	logger, _ := NewLogger(os.Stderr, "auto", level)
	return logger
}

// NewLogger creates a logger writing to w in the given format: "text",
// "json", or "auto" (text when w is a terminal, JSON otherwise).
func NewLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "auto", "":
		if isTerminal(w) {
			return slog.New(slog.NewTextHandler(w, options)), nil
		}
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want auto, text, or json)", format)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// commandLogger builds the logger handed to a command's Run. Params
// that embed ConfigParams get the configured format and level, with
// --verbose lowering the level to debug.
func commandLogger(params any) (*slog.Logger, error) {
	configurable, ok := params.(configurable)
	if !ok {
		return NewCommandLogger(slog.LevelInfo), nil
	}

	cfg, err := configurable.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.SlogLevel()
	if configurable.verbose() {
		level = slog.LevelDebug
	}
	return NewLogger(os.Stderr, cfg.Log.Format, level)
}
