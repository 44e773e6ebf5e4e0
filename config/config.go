/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for tokengraph projects.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/theme"
)

// DefaultFiles is the file pattern used when a project configures none.
const DefaultFiles = "tokens/**/*.json"

// Config represents the project configuration.
type Config struct {
	// Files specifies token files to load (paths, globs or specs).
	Files []FileSpec `yaml:"files" json:"files"`

	// Theme is the theme made active after loading.
	Theme string `yaml:"theme" json:"theme"`

	// UndoLimit caps the undo history of the MCP server's store.
	UndoLimit int `yaml:"undoLimit" json:"undoLimit"`
}

// FileSpec represents a token file specification.
// It can be specified as a simple string path or as an object with exclusions.
type FileSpec struct {
	// Path is the file path, relative to the project root. Supports ** globs.
	Path string `yaml:"path" json:"path"`

	// Ignore lists glob patterns, relative to the project root, that are
	// removed from the files Path matches.
	Ignore []string `yaml:"ignore" json:"ignore"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files:     []FileSpec{{Path: DefaultFiles}},
		Theme:     theme.Default,
		UndoLimit: store.MaxUndoStack,
	}
}

// applyDefaults fills unset fields from Default.
func (c *Config) applyDefaults() {
	d := Default()
	if len(c.Files) == 0 {
		c.Files = d.Files
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.UndoLimit <= 0 {
		c.UndoLimit = d.UndoLimit
	}
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}
