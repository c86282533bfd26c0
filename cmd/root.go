// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for tidb-zero-mcp.
// The root command serves the MCP protocol (stdio by default, streamable
// HTTP on request); subcommands cover one-shot SQL, instance provisioning,
// and cache management using the Cobra CLI framework.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tidbzero/mcp/internal/config"
	"tidbzero/mcp/internal/mcpserver"
	"tidbzero/mcp/internal/tidb"
)

var (
	showVersion bool
	transport   string
	addr        string
)

// rootCmd serves the MCP protocol when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "tidb-zero-mcp",
	Short:         "MCP server exposing a TiDB Cloud Zero MySQL database to AI agents",
	Long: `tidb-zero-mcp gives any AI agent (Claude, Cursor, Windsurf, ...) a persistent
MySQL database via TiDB Cloud Zero. On first use it automatically provisions a
free disposable instance: no signup, no API keys, no credentials needed.

All SQL runs over the TiDB Serverless HTTP API; no MySQL driver is involved.
Set TIDB_URL (or TIDB_HOST/TIDB_USERNAME/TIDB_PASSWORD/TIDB_DATABASE) to use
an existing database instead of auto-provisioning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("tidb-zero-mcp %s\n", Version)
			return nil
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		if transport != "" {
			settings.Transport = transport
		}
		if addr != "" {
			settings.Addr = addr
		}

		gateway := tidb.NewGateway(time.Duration(settings.RequestTimeout) * time.Second)
		srv := mcpserver.New(gateway, settings.MaxRows)

		switch settings.Transport {
		case "stdio":
			// stdout belongs to the protocol; all human-facing output
			// must go to stderr.
			pterm.SetDefaultOutput(os.Stderr)
			return server.ServeStdio(srv)
		case "http":
			pterm.Printf("Serving MCP over HTTP on %s\n", settings.Addr)
			return server.NewStreamableHTTPServer(srv).Start(settings.Addr)
		default:
			return fmt.Errorf("unknown transport %q (want stdio or http)", settings.Transport)
		}
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().StringVar(&transport, "transport", "", "MCP transport: stdio or http (default stdio)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address for the http transport (default :8080)")
}
