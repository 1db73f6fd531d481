// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the hashlink
// command.
//
// Configuration is loaded from a single file specified by either the
// HASHLINK_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. A command run with neither uses
// [Default] unchanged.
//
// Variable expansion is performed on resolver roots after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Link, Resolve, Log
//   - [Default] -- sha2-256, base58btc, no resolver roots, info logging
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
package config
