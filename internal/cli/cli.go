// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for teller-tui.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ServerURL string // --server overrides the configured base URL
	JSON      bool   // Output in JSON format

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `teller-tui - terminal client for the teller service

A keyboard-driven ATM-style client: log in with an account number and
PIN, check balances, withdraw and deposit, all from the terminal.

Usage:
  teller-tui                  Start TUI (default)
  teller-tui status, s        Check teller service health
  teller-tui config [show|path|init]  Configuration
  teller-tui version          Show version information
  teller-tui help             Show this help

Config Commands:
  teller-tui config show      Print the effective configuration
  teller-tui config path      Print the config file location
  teller-tui config init      Write a default config file

Global Flags:
  --server URL    Override the teller service URL
  --json          Output in JSON format (status command)

Environment:
  TELLER_SERVER_URL        Teller service base URL
  TELLER_TIMEOUT_SECS      Per-request timeout
  TELLER_INACTIVITY_SECS   Idle seconds before automatic logout
  TELLER_PERSISTENCE       Session storage: ephemeral or durable
  TELLER_THEME             UI theme: dark, light, auto

Examples:
  teller-tui                               Start the TUI
  teller-tui --server http://10.0.0.5:8000 Point at another service
  teller-tui status --json                 Health check for scripts

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("teller-tui version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: show help rather than guessing.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns
// remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--json":
			parsedArgs.JSON = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.ServerURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.ServerURL = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}
