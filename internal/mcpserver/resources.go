// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tidbzero/mcp/internal/format"
)

func (s *Server) registerResources(srv *server.MCPServer) {
	srv.AddResource(mcp.NewResource(
		"tidb://tables",
		"tables",
		mcp.WithResourceDescription("List of all tables in the database."),
		mcp.WithMIMEType("text/plain"),
	), s.readTables)

	srv.AddResource(mcp.NewResource(
		"tidb://info",
		"info",
		mcp.WithResourceDescription("Database connection info and TiDB version."),
		mcp.WithMIMEType("text/plain"),
	), s.readInfo)
}

func (s *Server) readTables(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	tables, err := s.gateway.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     format.Tables(tables),
		},
	}, nil
}

func (s *Server) readInfo(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info, err := s.gateway.DatabaseInfo(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     format.Info(info),
		},
	}, nil
}
