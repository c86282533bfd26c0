// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tidbzero/mcp/internal/config"
	"tidbzero/mcp/internal/format"
	"tidbzero/mcp/internal/httperrors"
	"tidbzero/mcp/internal/tidb"
)

// queryCmd runs a single SQL statement from the command line. This is the
// same path the MCP query/execute tools use, handy for smoke-testing an
// instance without an agent attached.
var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run one SQL statement against the active instance",
	Long: `The query command executes a single SQL statement over the TiDB Serverless
HTTP API and prints the result. Row sets render as a table; write statements
report affected rows.

The active instance is resolved the same way the MCP server resolves it:
explicit TIDB_* configuration first, then the cached auto-provisioned
instance, provisioning a fresh one if needed.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		gateway := tidb.NewGateway(time.Duration(settings.RequestTimeout) * time.Second)
		res, err := gateway.Query(cmd.Context(), args[0])
		if err != nil {
			httperrors.Display(err, "executing the statement")
			return err
		}

		switch r := res.(type) {
		case *tidb.RowSet:
			if len(r.Rows) == 0 {
				pterm.Println("No results.")
				return nil
			}
			data := pterm.TableData{r.Columns}
			rows := r.Rows
			if settings.MaxRows > 0 && len(rows) > settings.MaxRows {
				rows = rows[:settings.MaxRows]
			}
			data = append(data, rows...)
			if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}
			if len(rows) < len(r.Rows) {
				pterm.Printf("... (showing %d of %d rows)\n", len(rows), len(r.Rows))
			}
		case *tidb.Ack:
			pterm.Success.Println(format.Result(r, 0))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
