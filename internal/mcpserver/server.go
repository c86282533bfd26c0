// Copyright (c) 2025 TiDB Zero MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package mcpserver exposes the SQL gateway to AI agents over the Model
// Context Protocol. It registers the six SQL tools plus the table/info
// resources and the workflow prompts, and serializes gateway results into
// tool responses.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"tidbzero/mcp/internal/tidb"
)

const (
	// ServerName identifies this server to MCP clients.
	ServerName = "TiDB Cloud Zero"
	// ServerVersion is the MCP server version reported on initialize.
	ServerVersion = "1.0.0"
)

const instructions = `You have access to a TiDB Cloud Zero MySQL database via HTTP API.
Use the provided tools to create tables, insert data, run queries, and manage schema.
TiDB is MySQL-compatible with distributed SQL support. Standard MySQL syntax works.
The database is auto-provisioned — no setup needed. Just start using it.`

// Server bundles the gateway with response rendering settings.
type Server struct {
	gateway *tidb.Gateway
	maxRows int
}

// New builds the MCP server with all tools, resources, and prompts
// registered. maxRows caps how many rows a tool response renders.
func New(gateway *tidb.Gateway, maxRows int) *server.MCPServer {
	s := &Server{gateway: gateway, maxRows: maxRows}

	srv := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools(srv)
	s.registerResources(srv)
	registerPrompts(srv)
	return srv
}
