// Package main is the entry point for the tidb-zero-mcp server.
// It gives any AI agent a persistent MySQL database via TiDB Cloud Zero,
// auto-provisioning a free instance on first use.
package main

import (
	"tidbzero/mcp/cmd"
)

func main() {
	cmd.Execute()
}
