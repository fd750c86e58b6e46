// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for teller-tui.
//
// Command: config
// Subcommands: show (default), path, init
package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/teller-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(cfg *config.Config, args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg)
	case "path":
		return configPath()
	case "init":
		return configInit(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "usage: teller-tui config [show|path|init]")
		return 1
	}
}

// configShow prints the effective configuration (file + env overrides
// + defaults) as TOML.
func configShow(cfg *config.Config) int {
	encoder := toml.NewEncoder(os.Stdout)
	if err := encoder.Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render config: %v\n", err)
		return 1
	}
	return 0
}

func configPath() int {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Println(path)
	return 0
}

// configInit writes the current effective configuration to the config
// file, refusing to clobber an existing one.
func configInit(cfg *config.Config) int {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "config file already exists: %s\n", path)
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
		return 1
	}
	fmt.Printf("wrote %s\n", path)
	return 0
}
