// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPrompts(srv *server.MCPServer) {
	srv.AddPrompt(mcp.NewPrompt("create_crud_table",
		mcp.WithPromptDescription("Generate SQL to create a table with common CRUD patterns."),
		mcp.WithArgument("table_name", mcp.RequiredArgument(),
			mcp.ArgumentDescription("Name of the table to create")),
		mcp.WithArgument("columns", mcp.RequiredArgument(),
			mcp.ArgumentDescription("Column description, e.g. \"name text, age int\"")),
	), createCrudTable)

	srv.AddPrompt(mcp.NewPrompt("analyze_data",
		mcp.WithPromptDescription("Generate a data analysis workflow for a table."),
		mcp.WithArgument("table_name", mcp.RequiredArgument(),
			mcp.ArgumentDescription("Name of the table to analyze")),
	), analyzeData)
}

func createCrudTable(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tableName := req.Params.Arguments["table_name"]
	columns := req.Params.Arguments["columns"]

	text := fmt.Sprintf(`Please create a table called `+"`%s`"+` with these columns: %s

Also add:
- An auto-increment primary key `+"`id`"+`
- `+"`created_at`"+` and `+"`updated_at`"+` timestamps
- Appropriate indexes

Use the execute() tool to run the CREATE TABLE statement.
Then use describe_table() to verify the schema.`, tableName, columns)

	return mcp.NewGetPromptResult(
		"Create a CRUD table",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func analyzeData(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tableName := req.Params.Arguments["table_name"]

	text := fmt.Sprintf(`Please analyze the data in the `+"`%s`"+` table:

1. First, use describe_table(%q) to see the schema
2. Use query("SELECT COUNT(*) as total FROM %s") for row count
3. For numeric columns, calculate min, max, avg
4. For text columns, show distinct value counts
5. Summarize your findings`, tableName, tableName, tableName)

	return mcp.NewGetPromptResult(
		"Analyze table data",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
