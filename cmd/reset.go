// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidbzero/mcp/internal/tidb"
)

// resetCmd clears the cached instance record so the next operation
// auto-provisions a fresh instance.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the cached instance record",
	Long: `The reset command removes the locally cached instance record. Explicit
TIDB_* configuration is unaffected. The next SQL operation without explicit
configuration will auto-provision a new disposable instance.

The remote instance itself is not deleted; it simply expires on its own.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tidb.NewCache().Invalidate(); err != nil {
			return err
		}
		fmt.Println("✅ Cached instance record removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
