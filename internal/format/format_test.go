// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package format

import (
	"strings"
	"testing"
	"time"

	"tidbzero/mcp/internal/tidb"
)

func TestResultRowSet(t *testing.T) {
	rs := &tidb.RowSet{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", "Alice"}, {"2", "Bob"}},
	}

	got := Result(rs, 100)
	want := strings.Join([]string{
		"id | name ",
		"---+------",
		"1  | Alice",
		"2  | Bob  ",
	}, "\n")
	if got != want {
		t.Errorf("Result() =\n%s\nwant:\n%s", got, want)
	}
}

func TestResultRowSetTruncated(t *testing.T) {
	rs := &tidb.RowSet{Columns: []string{"n"}}
	for i := 0; i < 5; i++ {
		rs.Rows = append(rs.Rows, []string{"x"})
	}

	got := Result(rs, 3)
	if !strings.Contains(got, "... (showing 3 of more rows)") {
		t.Errorf("missing truncation notice:\n%s", got)
	}
	if strings.Count(got, "\n") != 5 { // header + separator + 3 rows + notice
		t.Errorf("unexpected line count:\n%s", got)
	}
}

func TestResultEmptyRowSet(t *testing.T) {
	rs := &tidb.RowSet{Columns: []string{"id"}, Rows: [][]string{}}
	if got := Result(rs, 100); got != "No results." {
		t.Errorf("Result() = %q", got)
	}
}

func TestResultAck(t *testing.T) {
	tests := []struct {
		name string
		ack  *tidb.Ack
		want string
	}{
		{
			name: "rows affected",
			ack:  &tidb.Ack{RowsAffected: 3},
			want: "OK. Rows affected: 3",
		},
		{
			name: "with insert id",
			ack:  &tidb.Ack{RowsAffected: 1, LastInsertID: "42"},
			want: "OK. Rows affected: 1. Last insert ID: 42",
		},
		{
			name: "zero insert id suppressed",
			ack:  &tidb.Ack{RowsAffected: 1, LastInsertID: "0"},
			want: "OK. Rows affected: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Result(tt.ack, 100); got != tt.want {
				t.Errorf("Result() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTables(t *testing.T) {
	got := Tables([]tidb.TableInfo{
		{Name: "users", RowEstimate: 7},
		{Name: "orders", RowEstimate: -1},
	})
	want := strings.Join([]string{
		"users  | rows",
		"-------+-----",
		"users  | 7",
		"orders | ?",
	}, "\n")
	// Header literal is "table", not a table name.
	want = strings.Replace(want, "users  | rows", "table  | rows", 1)
	if got != want {
		t.Errorf("Tables() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTablesEmpty(t *testing.T) {
	got := Tables(nil)
	if !strings.Contains(got, "No tables found") {
		t.Errorf("Tables(nil) = %q", got)
	}
}

func TestInfo(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info := &tidb.DatabaseInfo{
		Database:  "test",
		Version:   "8.0.11-TiDB-v8.5.0",
		Host:      "gateway01.tidbcloud.com",
		APIURL:    "https://http-gateway01.tidbcloud.com/v1beta/sql",
		Tables:    2,
		ExpiresAt: exp,
		Managed:   true,
	}

	got := Info(info)
	for _, want := range []string{
		"Database: test",
		"TiDB Version: 8.0.11-TiDB-v8.5.0",
		"Tables: 2",
		"Instance expires: 2026-01-02T03:04:05Z",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Info() missing %q:\n%s", want, got)
		}
	}
}

func TestInfoExplicitConfigHasNoExpiry(t *testing.T) {
	got := Info(&tidb.DatabaseInfo{Database: "test", Host: "h", Managed: false})
	if strings.Contains(got, "Instance expires") {
		t.Errorf("Info() reports expiry for explicit config:\n%s", got)
	}
}
