// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mcpserver

import "testing"

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"select", "SELECT * FROM users", true},
		{"lowercase select", "select 1", true},
		{"leading whitespace", "   SELECT 1", true},
		{"show", "SHOW TABLES", true},
		{"describe", "DESCRIBE users", true},
		{"desc", "DESC users", true},
		{"explain", "EXPLAIN SELECT * FROM users", true},
		{"bare keyword", "SHOW", true},
		{"newline after keyword", "SELECT\n*\nFROM users", true},
		{"insert", "INSERT INTO users (name) VALUES ('Alice')", false},
		{"update", "UPDATE users SET name = 'x'", false},
		{"delete", "DELETE FROM users", false},
		{"create", "CREATE TABLE t (id INT)", false},
		{"drop", "DROP TABLE users", false},
		{"keyword as prefix of identifier", "SELECTION", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReadOnly(tt.sql); got != tt.want {
				t.Errorf("IsReadOnly(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}
