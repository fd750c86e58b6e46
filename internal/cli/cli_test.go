// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{
			name:    "no args defaults to TUI",
			args:    nil,
			wantCmd: CmdTUI,
		},
		{
			name:    "explicit tui",
			args:    []string{"tui"},
			wantCmd: CmdTUI,
		},
		{
			name:    "status",
			args:    []string{"status"},
			wantCmd: CmdStatus,
		},
		{
			name:    "status short alias",
			args:    []string{"s"},
			wantCmd: CmdStatus,
		},
		{
			name:    "status with json flag",
			args:    []string{"status", "--json"},
			wantCmd: CmdStatus,
			check: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON flag not parsed")
				}
			},
		},
		{
			name:    "config show",
			args:    []string{"config", "show"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				if a.Subcommand != "show" {
					t.Errorf("Subcommand = %q", a.Subcommand)
				}
			},
		},
		{
			name:    "server flag with space",
			args:    []string{"--server", "http://10.0.0.5:8000", "status"},
			wantCmd: CmdStatus,
			check: func(t *testing.T, a Args) {
				if a.ServerURL != "http://10.0.0.5:8000" {
					t.Errorf("ServerURL = %q", a.ServerURL)
				}
			},
		},
		{
			name:    "server flag with equals",
			args:    []string{"--server=http://10.0.0.5:8000"},
			wantCmd: CmdTUI,
			check: func(t *testing.T, a Args) {
				if a.ServerURL != "http://10.0.0.5:8000" {
					t.Errorf("ServerURL = %q", a.ServerURL)
				}
			},
		},
		{
			name:    "version",
			args:    []string{"version"},
			wantCmd: CmdVersion,
		},
		{
			name:    "version flag form",
			args:    []string{"--version"},
			wantCmd: CmdVersion,
		},
		{
			name:    "help",
			args:    []string{"help"},
			wantCmd: CmdHelp,
		},
		{
			name:    "unknown command falls back to help",
			args:    []string{"withdraw"},
			wantCmd: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parse(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("command = %d, want %d", cmd, tt.wantCmd)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}
