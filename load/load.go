/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads a project's token files into a file map and writes
// changed files back.
package load

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"bennypowers.dev/tokengraph/config"
	"bennypowers.dev/tokengraph/fs"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/parser"
	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/token"
)

// ErrNoFiles indicates that no token files matched.
var ErrNoFiles = errors.New("no token files found")

// Options configures how a workspace is loaded.
type Options struct {
	// Root is the project directory. Config is looked up relative to it and
	// file keys are relative to it. Defaults to the working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Files lists files or globs to load, relative to Root.
	// Takes precedence over config file if set.
	Files []string
}

// Workspace is a loaded set of token files.
type Workspace struct {
	// Root is the absolute project directory.
	Root string

	// Config is the project configuration, or defaults.
	Config *config.Config

	// Files maps file keys (slash-separated, relative to Root) to their trees.
	Files map[string]*token.Group

	filesystem fs.FileSystem
}

// Load reads every token file selected by opts or the project config.
//
// The loading process:
//  1. Optionally loads config from .config/design-tokens.yaml
//  2. Applies Options values (they take precedence over config)
//  3. Expands globs
//  4. Parses each file
func Load(ctx context.Context, opts Options) (*Workspace, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	selection := cfg
	if len(opts.Files) > 0 {
		selection = &config.Config{}
		for _, f := range opts.Files {
			selection.Files = append(selection.Files, config.FileSpec{Path: f})
		}
	}

	paths, err := selection.ExpandFiles(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s (patterns: %s)", ErrNoFiles, root, strings.Join(selection.FilePaths(), ", "))
	}

	ws := &Workspace{
		Root:       root,
		Config:     cfg,
		Files:      make(map[string]*token.Group, len(paths)),
		filesystem: filesystem,
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := parser.ParseFile(filesystem, path)
		if err != nil {
			return nil, err
		}
		ws.Files[ws.Key(path)] = g
	}
	return ws, nil
}

// Key returns the file key for an absolute path.
func (w *Workspace) Key(path string) string {
	rel, err := filepath.Rel(w.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Path returns the absolute path for a file key.
func (w *Workspace) Path(key string) string {
	if filepath.IsAbs(key) {
		return filepath.FromSlash(key)
	}
	return filepath.Join(w.Root, filepath.FromSlash(key))
}

// NewStore loads the workspace into a fresh store, configured from the
// project config, with the configured theme active when it exists.
func (w *Workspace) NewStore(opts ...store.Option) *store.Store {
	opts = append([]store.Option{store.WithUndoLimit(w.Config.UndoLimit)}, opts...)
	s := store.New(opts...)
	s.Load(w.Files)
	if w.Config.Theme != "" {
		if err := s.SetActiveTheme(w.Config.Theme); err != nil {
			logger.Warn("configured theme ignored: %v", err)
		}
	}
	return s
}

// Exporter encodes one file in the on-disk format.
type Exporter interface {
	ExportFile(file string) ([]byte, error)
}

// Saved lists the absolute paths a Write touched.
type Saved struct {
	Written []string
	Removed []string
}

// Write encodes the named files and writes them under the workspace root,
// creating directories as needed. A named file the source no longer holds is
// deleted from disk.
func (w *Workspace) Write(src Exporter, files []string) (Saved, error) {
	var saved Saved
	for _, key := range files {
		path := w.Path(key)
		data, err := src.ExportFile(key)
		if errors.Is(err, store.ErrUnknownFile) {
			if err := w.filesystem.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
				return saved, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			saved.Removed = append(saved.Removed, path)
			continue
		}
		if err != nil {
			return saved, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := w.filesystem.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return saved, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := w.filesystem.WriteFile(path, data, 0o644); err != nil {
			return saved, fmt.Errorf("failed to write %s: %w", path, err)
		}
		saved.Written = append(saved.Written, path)
	}
	return saved, nil
}
