// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mcpserver

import "strings"

// readOnlyPrefixes are the statement classes query() accepts. The check is
// advisory: it steers agents toward execute() for writes, it is not a
// security boundary (the gateway passes statements through verbatim).
var readOnlyPrefixes = []string{"SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN"}

// IsReadOnly reports whether the statement starts with a read-only keyword.
func IsReadOnly(sql string) bool {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	for _, prefix := range readOnlyPrefixes {
		if upper == prefix || strings.HasPrefix(upper, prefix+" ") ||
			strings.HasPrefix(upper, prefix+"\t") || strings.HasPrefix(upper, prefix+"\n") {
			return true
		}
	}
	return false
}
