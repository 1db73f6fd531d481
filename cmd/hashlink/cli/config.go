// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/bureau-foundation/hashlink/lib/config"
)

// ConfigParams is an embeddable struct that adds --config and --verbose
// to a command's params. The framework loads the configuration before
// Run; the command reads it back with [ConfigParams.LoadConfig], which
// returns the cached result.
//
// With neither --config nor HASHLINK_CONFIG set, the configuration is
// [config.Default].
type ConfigParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to hashlink.yaml (default: $HASHLINK_CONFIG)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log at debug level"`

	loaded     *config.Config
	loadedFrom string
}

// configurable is satisfied by params structs embedding ConfigParams.
type configurable interface {
	LoadConfig() (*config.Config, error)
	verbose() bool
}

// LoadConfig returns the command's configuration, loading it on first
// call or when --config has changed.
func (p *ConfigParams) LoadConfig() (*config.Config, error) {
	if p.loaded != nil && p.loadedFrom == p.ConfigPath {
		return p.loaded, nil
	}

	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	p.loaded, p.loadedFrom = cfg, p.ConfigPath
	return cfg, nil
}

func (p *ConfigParams) verbose() bool {
	return p.Verbose
}
