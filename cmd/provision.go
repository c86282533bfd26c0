// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tidbzero/mcp/internal/config"
	"tidbzero/mcp/internal/httperrors"
	"tidbzero/mcp/internal/tidb"
)

// provisionCmd forces a fresh disposable instance. The gateway itself never
// retries provisioning; the retry policy lives here, where a human asked
// for an instance and a couple of attempts with backoff are harmless.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision a fresh TiDB Cloud Zero instance",
	Long: `The provision command discards any cached instance record and requests a new
disposable TiDB Cloud Zero instance. The new connection parameters are written
to the local cache so the MCP server and the query command pick them up.

Instances are free and live for 72 hours. Transient provisioning failures are
retried a few times with exponential backoff.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		cache := tidb.NewCache()
		if err := cache.Invalidate(); err != nil {
			return err
		}

		spinner, _ := pterm.DefaultSpinner.Start("Provisioning a TiDB Cloud Zero instance...")

		prov := tidb.NewProvisioner(time.Duration(settings.RequestTimeout) * time.Second)
		policy := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4),
			cmd.Context(),
		)
		rec, err := backoff.RetryWithData(func() (*tidb.Record, error) {
			return prov.Provision(cmd.Context())
		}, policy)
		if err != nil {
			spinner.Fail("Provisioning failed")
			httperrors.Display(err, "provisioning an instance")
			return err
		}

		if err := cache.Save(rec); err != nil {
			spinner.Fail("Could not save the instance record")
			return err
		}
		spinner.Success("Instance ready")

		pterm.Println()
		pterm.Printf("Host:     %s\n", rec.Host)
		pterm.Printf("Database: %s\n", rec.Database)
		if !rec.ExpiresAt.IsZero() {
			pterm.Printf("Expires:  %s\n", rec.ExpiresAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
