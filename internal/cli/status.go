// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for teller-tui.
//
// Command: status
// Short:   Check teller service health
// Aliases: s
//
// Examples:
//   teller-tui status             Human-readable health check
//   teller-tui status --json      Machine-readable (exit 0 = reachable)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/teller-tui/internal/api"
	"github.com/jeranaias/teller-tui/internal/config"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")). // Cyan
				MarginBottom(1)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")). // Light gray
				Width(10)

	statusUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")) // Green

	statusDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red
)

// statusReport is the JSON shape for --json output.
type statusReport struct {
	Server    string `json:"server"`
	Reachable bool   `json:"reachable"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HandleStatus checks whether the teller service answers at its root
// endpoint and reports the result. Returns a non-zero exit code when
// the service is down so scripts can use it as a probe.
func HandleStatus(cfg *config.Config, args Args) int {
	baseURL := cfg.Server.BaseURL
	if args.ServerURL != "" {
		baseURL = args.ServerURL
	}

	client := api.NewClient(&api.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, func() string { return "" })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := client.CheckRunning(ctx)
	latency := time.Since(start)

	if args.JSON {
		report := statusReport{
			Server:    baseURL,
			Reachable: err == nil,
			LatencyMS: latency.Milliseconds(),
		}
		if err != nil {
			report.Error = api.Message(err)
		}
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Println(statusTitleStyle.Render("Teller Service Status"))
		fmt.Printf("%s %s\n", statusLabelStyle.Render("Server"), baseURL)
		if err == nil {
			fmt.Printf("%s %s (%dms)\n", statusLabelStyle.Render("Health"),
				statusUpStyle.Render("reachable"), latency.Milliseconds())
		} else {
			fmt.Printf("%s %s\n", statusLabelStyle.Render("Health"),
				statusDownStyle.Render("unreachable"))
			fmt.Printf("%s %s\n", statusLabelStyle.Render("Error"), api.Message(err))
		}
	}

	if err != nil {
		return 1
	}
	return 0
}
