/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver exposes a token store as MCP tools, so that agents can
// read, edit, validate and review a token set.
package mcpserver

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/internal/version"
	"bennypowers.dev/tokengraph/load"
	"bennypowers.dev/tokengraph/store"
)

// Server serves one store over MCP. Tool calls may arrive concurrently, so
// every handler holds mu while it touches the store.
type Server struct {
	mu        sync.Mutex
	store     *store.Store
	workspace *load.Workspace // nil disables save
	mcp       *mcp.Server
}

// New creates a server for s. ws is where save writes dirty files; it may be
// nil for a store that was not loaded from disk.
func New(s *store.Store, ws *load.Workspace) *Server {
	srv := &Server{store: s, workspace: ws}

	srv.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    version.Name,
		Version: version.Get(),
	}, nil)

	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "list_tokens",
		Description: "List resolved tokens of the active theme, optionally filtered by type or path prefix",
	}, srv.handleListTokens)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "get_token",
		Description: "Get one resolved token and the tokens that alias it",
	}, srv.handleGetToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "update_token",
		Description: "Replace a token's value, optionally in a theme variant",
	}, srv.handleUpdateToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "describe_token",
		Description: "Set or clear a token's $description",
	}, srv.handleDescribeToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "add_token",
		Description: "Add a token to a file, creating the file and groups as needed",
	}, srv.handleAddToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "remove_token",
		Description: "Remove a token from every file that defines it",
	}, srv.handleRemoveToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "move_token",
		Description: "Move a token to another file unchanged",
	}, srv.handleMoveToken)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "rename_group",
		Description: "Rename a group or token path and rewrite every alias pointing into it",
	}, srv.handleRenameGroup)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "undo",
		Description: "Undo the last mutation",
	}, srv.handleUndo)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "redo",
		Description: "Redo the last undone mutation",
	}, srv.handleRedo)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "validate",
		Description: "Check every file of every theme for duplicate paths, broken or circular references and invalid values",
	}, srv.handleValidate)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "diff",
		Description: "List token changes since the files were loaded or last saved",
	}, srv.handleDiff)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "set_theme",
		Description: "Switch the theme used for resolution",
	}, srv.handleSetTheme)
	mcp.AddTool(srv.mcp, &mcp.Tool{
		Name:        "save",
		Description: "Write changed files to disk",
	}, srv.handleSave)

	return srv
}

// Run serves MCP on stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("serving %d files over stdio", len(s.store.Files()))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
