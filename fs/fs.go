/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides the filesystem token files are read from and written
// to. Tests swap in an in-memory implementation.
package fs

import (
	"io/fs"
	"os"
)

// FileSystem reads like an fs.FS, so it works with fs.WalkDir, and adds the
// writes a save needs. Paths are absolute OS paths.
type FileSystem interface {
	fs.ReadFileFS
	fs.ReadDirFS
	fs.StatFS

	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}

// Exists reports whether path exists on filesystem.
func Exists(filesystem FileSystem, path string) bool {
	_, err := filesystem.Stat(path)
	return err == nil
}

// OSFileSystem is the FileSystem backed by the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns the OS filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (OSFileSystem) Open(name string) (fs.File, error)            { return os.Open(name) }
func (OSFileSystem) ReadFile(name string) ([]byte, error)         { return os.ReadFile(name) }
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error)   { return os.ReadDir(name) }
func (OSFileSystem) Stat(name string) (fs.FileInfo, error)        { return os.Stat(name) }
func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (OSFileSystem) Remove(name string) error                     { return os.Remove(name) }

func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
