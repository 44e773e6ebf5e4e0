/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/tokengraph/diff"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/token"
	"bennypowers.dev/tokengraph/validator"
)

// ErrNoWorkspace is returned by save when the server has nowhere to write.
var ErrNoWorkspace = errors.New("no workspace to save to")

type ListTokensInput struct {
	Category string `json:"category,omitempty" jsonschema:"token type to keep, e.g. color"`
	Prefix   string `json:"prefix,omitempty" jsonschema:"keep only paths under this group"`
}

type TokenList struct {
	Theme  string                `json:"theme"`
	Tokens []store.ResolvedToken `json:"tokens"`
}

type PathInput struct {
	Path string `json:"path" jsonschema:"dot-separated token path"`
}

type TokenDetail struct {
	Token      store.ResolvedToken `json:"token"`
	Dependents []string            `json:"dependents"`
}

type UpdateTokenInput struct {
	Path  string `json:"path" jsonschema:"dot-separated token path"`
	Value any    `json:"value" jsonschema:"new $value, a literal or an alias like {color.blue.500}"`
	Theme string `json:"theme,omitempty" jsonschema:"theme variant to edit; defaults to the base files"`
}

type DescribeTokenInput struct {
	Path        string `json:"path" jsonschema:"dot-separated token path"`
	Description string `json:"description" jsonschema:"new $description, empty to remove it"`
	Theme       string `json:"theme,omitempty" jsonschema:"theme variant to edit, defaults to the base files"`
}

type AddTokenInput struct {
	Path  string `json:"path" jsonschema:"dot-separated token path"`
	Type  string `json:"type" jsonschema:"$type of the new token"`
	Value any    `json:"value" jsonschema:"$value of the new token"`
	File  string `json:"file" jsonschema:"file key to add the token to"`
}

type MoveTokenInput struct {
	Path string `json:"path" jsonschema:"dot-separated token path"`
	File string `json:"file" jsonschema:"file key to move the token to"`
}

type RenameGroupInput struct {
	From string `json:"from" jsonschema:"current group path"`
	To   string `json:"to" jsonschema:"new group path"`
}

type NoInput struct{}

// MutationResult reports the store state after a mutation.
type MutationResult struct {
	Applied    bool         `json:"applied"`
	DirtyFiles []string     `json:"dirtyFiles"`
	Diff       []diff.Entry `json:"diff"`
	CanUndo    bool         `json:"canUndo"`
	CanRedo    bool         `json:"canRedo"`
}

type ValidateInput struct {
	Severity string `json:"severity,omitempty" jsonschema:"error or warning; empty for both"`
}

type ValidationReport struct {
	Results  []validator.Result `json:"results"`
	Errors   int                `json:"errors"`
	Warnings int                `json:"warnings"`
}

type DiffReport struct {
	Entries []diff.Entry `json:"entries"`
	Summary diff.Summary `json:"summary"`
}

type SetThemeInput struct {
	Theme string `json:"theme" jsonschema:"theme to activate"`
}

type ThemeState struct {
	Active string   `json:"active"`
	Themes []string `json:"themes"`
}

type SaveResult struct {
	Written []string `json:"written"`
	Removed []string `json:"removed"`
}

func (s *Server) handleListTokens(_ context.Context, _ *mcp.CallToolRequest, in ListTokensInput) (*mcp.CallToolResult, TokenList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := TokenList{Theme: s.store.ActiveTheme(), Tokens: []store.ResolvedToken{}}
	for _, t := range s.store.ListResolvedTokens(in.Category) {
		if in.Prefix == "" || token.HasPathPrefix(t.Path, in.Prefix) {
			out.Tokens = append(out.Tokens, t)
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetToken(_ context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, TokenDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store.GetResolvedToken(in.Path)
	if !ok {
		return nil, TokenDetail{}, fmt.Errorf("%w: %s", store.ErrTokenNotFound, in.Path)
	}
	return nil, TokenDetail{Token: t, Dependents: s.store.Dependents(in.Path)}, nil
}

// mutate runs one store mutation and reports the resulting state.
func (s *Server) mutate(name string, fn func(*store.Store) error) (*mcp.CallToolResult, MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.store); err != nil {
		logger.Debug("%s: %v", name, err)
		return nil, MutationResult{}, err
	}
	logger.Debug("%s applied", name)
	return nil, s.state(true), nil
}

func (s *Server) state(applied bool) MutationResult {
	return MutationResult{
		Applied:    applied,
		DirtyFiles: s.store.DirtyFiles(),
		Diff:       s.store.Diff(),
		CanUndo:    s.store.CanUndo(),
		CanRedo:    s.store.CanRedo(),
	}
}

func (s *Server) handleUpdateToken(_ context.Context, _ *mcp.CallToolRequest, in UpdateTokenInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("update_token", func(st *store.Store) error {
		return st.UpdateToken(in.Path, in.Value, in.Theme)
	})
}

func (s *Server) handleDescribeToken(_ context.Context, _ *mcp.CallToolRequest, in DescribeTokenInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("describe_token", func(st *store.Store) error {
		return st.DescribeToken(in.Path, in.Description, in.Theme)
	})
}

func (s *Server) handleAddToken(_ context.Context, _ *mcp.CallToolRequest, in AddTokenInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("add_token", func(st *store.Store) error {
		return st.AddToken(in.Path, token.Type(in.Type), in.Value, in.File)
	})
}

func (s *Server) handleRemoveToken(_ context.Context, _ *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("remove_token", func(st *store.Store) error {
		return st.RemoveToken(in.Path)
	})
}

func (s *Server) handleMoveToken(_ context.Context, _ *mcp.CallToolRequest, in MoveTokenInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("move_token", func(st *store.Store) error {
		return st.MoveToken(in.Path, in.File)
	})
}

func (s *Server) handleRenameGroup(_ context.Context, _ *mcp.CallToolRequest, in RenameGroupInput) (*mcp.CallToolResult, MutationResult, error) {
	return s.mutate("rename_group", func(st *store.Store) error {
		return st.RenameGroup(in.From, in.To)
	})
}

func (s *Server) handleUndo(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.state(s.store.Undo()), nil
}

func (s *Server) handleRedo(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.state(s.store.Redo()), nil
}

func (s *Server) handleValidate(_ context.Context, _ *mcp.CallToolRequest, in ValidateInput) (*mcp.CallToolResult, ValidationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := s.store.ValidationResults()
	report := ValidationReport{
		Errors:   len(validator.Filter(results, validator.SeverityError)),
		Warnings: len(validator.Filter(results, validator.SeverityWarning)),
	}
	switch in.Severity {
	case "":
		report.Results = results
	case string(validator.SeverityError), string(validator.SeverityWarning):
		report.Results = validator.Filter(results, validator.Severity(in.Severity))
	default:
		return nil, ValidationReport{}, fmt.Errorf("unknown severity %q", in.Severity)
	}
	if report.Results == nil {
		report.Results = []validator.Result{}
	}
	return nil, report, nil
}

func (s *Server) handleDiff(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, DiffReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.store.Diff()
	if entries == nil {
		entries = []diff.Entry{}
	}
	return nil, DiffReport{Entries: entries, Summary: diff.Summarize(entries)}, nil
}

func (s *Server) handleSetTheme(_ context.Context, _ *mcp.CallToolRequest, in SetThemeInput) (*mcp.CallToolResult, ThemeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetActiveTheme(in.Theme); err != nil {
		return nil, ThemeState{}, err
	}
	return nil, ThemeState{Active: s.store.ActiveTheme(), Themes: s.store.Themes()}, nil
}

func (s *Server) handleSave(_ context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.workspace == nil {
		return nil, SaveResult{}, ErrNoWorkspace
	}
	saved, err := s.workspace.Write(s.store, s.store.DirtyFiles())
	result := SaveResult{Written: orEmpty(saved.Written), Removed: orEmpty(saved.Removed)}
	if err != nil {
		return nil, result, err
	}
	s.store.Rebase()
	logger.Info("saved %d files, removed %d", len(saved.Written), len(saved.Removed))
	return nil, result, nil
}

func orEmpty(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
