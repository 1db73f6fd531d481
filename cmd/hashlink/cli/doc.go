// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the hashlink binary.
//
// A [Command] tree is dispatched by positional name. Leaf commands
// declare their flags as a tagged params struct (see [BindFlags]) and
// receive a context, the remaining positional arguments, and a
// structured logger. Unknown commands and flags produce "did you mean"
// suggestions based on edit distance.
//
// Embeddable params structs add shared behavior:
//
//   - [JSONOutput] -- the --json flag and [JSONOutput.EmitJSON]
//   - [ConfigParams] -- the --config and --verbose flags; the framework
//     loads the configuration before Run and uses its log settings for
//     the command logger
//
// Commands whose non-zero exit is an expected outcome (a failed
// verification) return [ExitError] after writing their own output.
package cli
