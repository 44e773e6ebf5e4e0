/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil loads testdata fixtures for tokengraph tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/tokengraph/internal/mapfs"
)

var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// candidates lists where a testdata path may sit: Go runs tests in the
// package directory, and the shared testdata lives at the module root.
func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

func find(t *testing.T, rel string) string {
	t.Helper()
	for _, p := range candidates(rel) {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Fatalf("Could not find testdata/%s", rel)
	return ""
}

// walkFixture calls fn with each file of a fixture directory, relative path
// and content.
func walkFixture(t *testing.T, fixtureDir string, fn func(rel string, content []byte) error) {
	t.Helper()
	src := find(t, fixtureDir)
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		return fn(rel, content)
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
}

// NewFixtureFS returns an in-memory filesystem holding the files of a
// fixture directory under rootPath.
func NewFixtureFS(t *testing.T, fixtureDir, rootPath string) *mapfs.MapFileSystem {
	t.Helper()
	mfs := mapfs.New()
	walkFixture(t, fixtureDir, func(rel string, content []byte) error {
		mfs.AddFile(filepath.Join(rootPath, rel), string(content), 0o644)
		return nil
	})
	return mfs
}

// CopyFixtureDir copies a fixture directory into a fresh temporary directory
// on disk and returns its path, for commands that work on the OS filesystem.
func CopyFixtureDir(t *testing.T, fixtureDir string) string {
	t.Helper()
	dst := t.TempDir()
	walkFixture(t, fixtureDir, func(rel string, content []byte) error {
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, content, 0o644)
	})
	return dst
}

// LoadFixtureFile reads a single testdata file.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()
	content, err := os.ReadFile(find(t, fixturePath))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// UpdateGoldenFile writes actual output to a golden file when the -update
// flag is set.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	target := candidates(goldenPath)[0]
	for _, p := range candidates(goldenPath) {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			target = p
			break
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(target, actual, 0o644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
	}
	t.Logf("Updated golden file: %s", target)
}
