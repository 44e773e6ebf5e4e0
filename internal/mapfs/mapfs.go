/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem for tests.
package mapfs

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// modTime is fixed so that stat results are stable across runs.
var modTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// MapFileSystem is a fs.FileSystem over fstest.MapFS. Absolute paths are
// stored without their leading slash; parent directories are implied by the
// files beneath them.
type MapFileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS
}

// New returns an empty filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{files: make(fstest.MapFS)}
}

// AddFile adds or replaces a file.
func (m *MapFileSystem) AddFile(name, content string, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(name)] = &fstest.MapFile{Data: []byte(content), Mode: mode, ModTime: modTime}
}

func (m *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(name)
	if parent, ok := m.files[path.Dir(k)]; ok && !parent.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	m.files[k] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm, ModTime: modTime}
	return nil
}

func (m *MapFileSystem) MkdirAll(dir string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(dir)
	if f, ok := m.files[k]; ok {
		if !f.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrExist}
		}
		return nil
	}
	m.files[k] = &fstest.MapFile{Mode: fs.ModeDir | perm.Perm(), ModTime: modTime}
	return nil
}

// Remove deletes a file or an empty directory.
func (m *MapFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(name)
	prefix := k + "/"
	for other := range m.files {
		if strings.HasPrefix(other, prefix) {
			return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
		}
	}
	if _, ok := m.files[k]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, k)
	return nil
}

func (m *MapFileSystem) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Open(key(name))
}

func (m *MapFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadFile(key(name))
}

func (m *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadDir(key(name))
}

func (m *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Stat(key(name))
}

// key maps an absolute or relative path to its MapFS key.
func key(name string) string {
	k := strings.TrimPrefix(path.Clean("/"+name), "/")
	if k == "" {
		return "."
	}
	return k
}
