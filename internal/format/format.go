// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package format renders normalized SQL results as plain text for MCP tool
// responses. Output is ANSI-free: it travels inside protocol payloads, not
// to a terminal.
package format

import (
	"fmt"
	"strings"
	"time"

	"tidbzero/mcp/internal/tidb"
)

// Result renders a RowSet as an aligned table capped at maxRows, or an Ack
// as a one-line acknowledgment.
func Result(res tidb.Result, maxRows int) string {
	switch r := res.(type) {
	case *tidb.RowSet:
		return rowSet(r, maxRows)
	case *tidb.Ack:
		return ack(r)
	default:
		return "No results."
	}
}

func ack(a *tidb.Ack) string {
	msg := fmt.Sprintf("OK. Rows affected: %d", a.RowsAffected)
	if a.LastInsertID != "" && a.LastInsertID != "0" {
		msg += fmt.Sprintf(". Last insert ID: %s", a.LastInsertID)
	}
	return msg
}

func rowSet(rs *tidb.RowSet, maxRows int) string {
	if len(rs.Rows) == 0 {
		return "No results."
	}

	rows := rs.Rows
	truncated := maxRows > 0 && len(rows) > maxRows
	if truncated {
		rows = rows[:maxRows]
	}

	widths := make([]int, len(rs.Columns))
	for i, col := range rs.Columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var b strings.Builder
	for i, col := range rs.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(pad(col, widths[i]))
	}
	b.WriteByte('\n')
	for i := range rs.Columns {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", widths[i]))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i := range rs.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i]))
		}
	}
	if truncated {
		fmt.Fprintf(&b, "\n... (showing %d of more rows)", maxRows)
	}
	return b.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// Tables renders the list_tables output as a name/rows table.
func Tables(tables []tidb.TableInfo) string {
	if len(tables) == 0 {
		return "No tables found. Use execute() to create one!"
	}

	nameWidth := len("table")
	for _, t := range tables {
		if len(t.Name) > nameWidth {
			nameWidth = len(t.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s | rows\n", pad("table", nameWidth))
	fmt.Fprintf(&b, "%s-+-----", strings.Repeat("-", nameWidth))
	for _, t := range tables {
		count := "?"
		if t.RowEstimate >= 0 {
			count = fmt.Sprintf("%d", t.RowEstimate)
		}
		fmt.Fprintf(&b, "\n%s | %s", pad(t.Name, nameWidth), count)
	}
	return b.String()
}

// Info renders the get_database_info output.
func Info(info *tidb.DatabaseInfo) string {
	var b strings.Builder
	version := info.Version
	if version == "" {
		version = "unknown"
	}
	database := info.Database
	if database == "" {
		database = "unknown"
	}
	fmt.Fprintf(&b, "Database: %s\n", database)
	fmt.Fprintf(&b, "TiDB Version: %s\n", version)
	fmt.Fprintf(&b, "Host: %s\n", info.Host)
	fmt.Fprintf(&b, "API: %s\n", info.APIURL)
	fmt.Fprintf(&b, "Tables: %d\n", info.Tables)
	b.WriteString("Connection: Serverless HTTP (stateless, no driver needed)\n")
	if info.Managed && !info.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "Instance expires: %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	b.WriteString("\nTiDB Cloud Zero — Free serverless MySQL for AI agents.\n")
	b.WriteString("Get yours at https://zero.tidbcloud.com")
	return b.String()
}
