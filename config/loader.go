/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	tgfs "bennypowers.dev/tokengraph/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "design-tokens"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/design-tokens.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem tgfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !tgfs.Exists(filesystem, configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		}

		cfg.applyDefaults()
		return cfg, nil
	}

	return nil, nil
}

// ExpandFiles expands glob patterns in Files and returns absolute paths,
// sorted and without duplicates. Non-glob paths are returned as given, even
// if the file does not exist.
func (c *Config) ExpandFiles(filesystem tgfs.FileSystem, rootDir string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, spec := range c.Files {
		expanded, err := expandFilePath(filesystem, rootDir, spec.Path)
		if err != nil {
			return nil, err
		}
		for _, path := range expanded {
			if seen[path] || ignored(rootDir, path, spec.Ignore) {
				continue
			}
			seen[path] = true
			result = append(result, path)
		}
	}

	sort.Strings(result)
	return result, nil
}

// ignored reports whether path, taken relative to rootDir, matches any of
// the ignore patterns.
func ignored(rootDir, path string, patterns []string) bool {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if matchDoublestar(strings.TrimPrefix(pattern, "./"), rel) {
			return true
		}
	}
	return false
}

// expandFilePath returns the absolute paths a file pattern names. A path
// without glob syntax is returned as is; a missing file is reported when it
// is read.
func expandFilePath(filesystem tgfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}
	pattern = filepath.ToSlash(pattern)
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{filepath.FromSlash(pattern)}, nil
	}
	return expandGlob(filesystem, pattern)
}

// expandGlob walks the static prefix of pattern and keeps the files whose
// path below it matches the rest.
func expandGlob(filesystem tgfs.FileSystem, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(pattern)

	var matches []string
	err := fs.WalkDir(filesystem, base, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && d != nil && d.IsDir():
			return fs.SkipDir
		case err != nil, d.IsDir():
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(filepath.ToSlash(path), base), "/")
		if matchDoublestar(rest, rel) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}

func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
