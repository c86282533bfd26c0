// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tidbzero/mcp/internal/logging"
	"tidbzero/mcp/internal/tidb"
)

// dbinfoCmd displays the active connection with the password masked. It
// never provisions: with nothing configured and nothing cached it just says
// so, which makes it safe to run to check state.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the active database connection",
	Long: `The dbinfo command displays which TiDB instance is currently active (explicit
TIDB_* configuration or a cached auto-provisioned instance) with the password
masked. Unlike the SQL commands, it performs no network calls and never
triggers provisioning.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := tidb.FromEnv()
		if err != nil {
			return err
		}

		source := "environment (TIDB_* variables)"
		if profile == nil {
			rec, ok := tidb.NewCache().Load()
			if !ok {
				pterm.Println("⚠️  No instance configured or cached")
				pterm.Println("   Set TIDB_URL, or run: tidb-zero-mcp provision")
				return nil
			}
			profile = rec.Profile(tidb.SourceCache)
			source = "cached auto-provisioned instance"
		}

		dsn := fmt.Sprintf("mysql://%s:%s@%s/%s",
			profile.Username, profile.Password, profile.Host, profile.Database)

		pterm.Printf("Using %s\n", source)
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(logging.Mask(dsn))
		pterm.Println()
		pterm.Printf("SQL endpoint: %s\n", profile.APIURL())
		if !profile.ExpiresAt.IsZero() {
			pterm.Printf("Instance expires: %s\n", profile.ExpiresAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
