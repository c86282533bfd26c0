// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tidbzero/mcp/internal/format"
	"tidbzero/mcp/internal/tidb"
)

func (s *Server) registerTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("query",
		mcp.WithDescription(`Execute a read-only SQL query (SELECT, SHOW, DESCRIBE, EXPLAIN).

Returns results as a formatted table.

Examples:
    query("SELECT * FROM users LIMIT 10")
    query("SHOW TABLES")
    query("DESCRIBE users")`),
		mcp.WithString("sql", mcp.Required(), mcp.Description("SQL query to execute")),
	), s.handleQuery)

	srv.AddTool(mcp.NewTool("execute",
		mcp.WithDescription(`Execute a write SQL statement (CREATE, INSERT, UPDATE, DELETE, ALTER, DROP).

Returns the number of affected rows.

Examples:
    execute("CREATE TABLE users (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(255))")
    execute("INSERT INTO users (name) VALUES ('Alice')")`),
		mcp.WithString("sql", mcp.Required(), mcp.Description("SQL statement to execute")),
	), s.handleExecute)

	srv.AddTool(mcp.NewTool("batch_execute",
		mcp.WithDescription(`Execute multiple SQL statements sequentially.

Statements run in order; execution stops at the first failure and reports
which statement failed. Statements after the failure are not attempted.`),
		mcp.WithArray("statements", mcp.Required(),
			mcp.Description("SQL statements to execute in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleBatchExecute)

	srv.AddTool(mcp.NewTool("list_tables",
		mcp.WithDescription("List all tables in the current database with row counts."),
	), s.handleListTables)

	srv.AddTool(mcp.NewTool("describe_table",
		mcp.WithDescription("Get the schema of a table (columns, types, keys)."),
		mcp.WithString("table", mcp.Required(), mcp.Description("Table name to describe")),
	), s.handleDescribeTable)

	srv.AddTool(mcp.NewTool("get_database_info",
		mcp.WithDescription("Get database connection info, TiDB version, and instance status."),
	), s.handleDatabaseInfo)
}

// toolError renders a gateway failure as a tool result error, keeping the
// remote message and error kind visible to the agent.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
}

func (s *Server) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sql, err := req.RequireString("sql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !IsReadOnly(sql) {
		return mcp.NewToolResultError("Error: query() only supports SELECT, SHOW, DESCRIBE, and EXPLAIN. Use execute() for write operations."), nil
	}

	res, err := s.gateway.Query(ctx, sql)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(format.Result(res, s.maxRows)), nil
}

func (s *Server) handleExecute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sql, err := req.RequireString("sql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.gateway.Execute(ctx, sql)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(format.Result(res, s.maxRows)), nil
}

func (s *Server) handleBatchExecute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Statements []string `json:"statements"`
	}
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(args.Statements) == 0 {
		return mcp.NewToolResultError("Error: statements must not be empty"), nil
	}

	results, err := s.gateway.BatchExecute(ctx, args.Statements)

	var lines []string
	for i, res := range results {
		line := fmt.Sprintf("[%d] OK", i+1)
		if ack, ok := res.(*tidb.Ack); ok {
			line += fmt.Sprintf(" (%d rows)", ack.RowsAffected)
		}
		lines = append(lines, line)
	}
	if err != nil {
		var be *tidb.BatchError
		if errors.As(err, &be) {
			lines = append(lines, fmt.Sprintf("[%d] Error: %v", be.Index+1, be.Err))
			if remaining := len(args.Statements) - be.Index - 1; remaining > 0 {
				lines = append(lines, fmt.Sprintf("(%d later statement(s) not attempted)", remaining))
			}
			return mcp.NewToolResultError(strings.Join(lines, "\n")), nil
		}
		return toolError(err), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleListTables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tables, err := s.gateway.ListTables(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(format.Tables(tables)), nil
}

func (s *Server) handleDescribeTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := req.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rs, err := s.gateway.DescribeTable(ctx, table)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(format.Result(rs, s.maxRows)), nil
}

func (s *Server) handleDatabaseInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.gateway.DatabaseInfo(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(format.Info(info)), nil
}
