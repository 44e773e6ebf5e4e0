/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package store

import (
	"fmt"

	"bennypowers.dev/tokengraph/theme"
	"bennypowers.dev/tokengraph/token"
)

// Every mutation follows the same discipline: work on a shallow copy of the
// file map, clone each file before changing it, and commit only on success.
// A failed mutation leaves the store and its history untouched.

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrTokenNotFound, path)
}

func unknownTheme(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
}

func conflict(path string) error {
	return fmt.Errorf("%w: %s", ErrPathConflict, path)
}

// edit returns a private clone of file in next, creating the file if needed.
func edit(next map[string]*token.Group, file string) *token.Group {
	g, ok := next[file]
	if !ok {
		g = token.NewGroup()
	} else {
		g = g.Clone()
	}
	next[file] = g
	return g
}

// dropIfEmpty removes a file that holds nothing and is absent from the
// baseline, so that adding and then removing a token leaves no trace.
func (s *Store) dropIfEmpty(next map[string]*token.Group, file string) {
	g := next[file]
	if g.Len() > 0 || g.Meta.Len() > 0 {
		return
	}
	if _, ok := s.baseline[file]; !ok {
		delete(next, file)
	}
}

// owner finds the file holding the token at path. With a theme other than
// light, that theme's files are searched before the base files.
func (s *Store) owner(path, name string) (string, error) {
	var layers []string
	if name != "" && name != theme.Default {
		if !theme.Has(s.files, name) {
			return "", unknownTheme(name)
		}
		layers = append(layers, name)
	}
	layers = append(layers, theme.Default)

	for _, layer := range layers {
		for _, file := range theme.FilesFor(s.files, layer) {
			if _, ok := s.files[file].LookupToken(path); ok {
				return file, nil
			}
		}
	}
	return "", notFound(path)
}

// UpdateToken replaces the value of the token at path. theme selects which
// variant to edit; empty or "light" edits the base files.
func (s *Store) UpdateToken(path string, value any, themeName string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	file, err := s.owner(path, themeName)
	if err != nil {
		return err
	}

	next := cloneFiles(s.files)
	g := edit(next, file)
	t, _ := g.LookupToken(path)
	if err := g.Insert(path, t.WithValue(value)); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// DescribeToken replaces the $description of the token at path. An empty
// description removes the key.
func (s *Store) DescribeToken(path, description, themeName string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	file, err := s.owner(path, themeName)
	if err != nil {
		return err
	}

	next := cloneFiles(s.files)
	g := edit(next, file)
	t, _ := g.LookupToken(path)
	if err := g.Insert(path, t.WithDescription(description)); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// AddToken inserts a new token into file, creating the file and any
// intermediate groups as needed. The path is not checked against other
// files; duplicates are reported by validation.
func (s *Store) AddToken(path string, typ token.Type, value any, file string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if path == "" {
		return conflict(path)
	}
	if existing, ok := s.lookup(file, path); ok {
		if _, isGroup := existing.(*token.Group); isGroup {
			return conflict(path)
		}
	}

	next := cloneFiles(s.files)
	g := edit(next, file)
	if err := g.Insert(path, token.NewToken(typ, value)); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

func (s *Store) lookup(file, path string) (token.Node, bool) {
	g, ok := s.files[file]
	if !ok {
		return nil, false
	}
	return g.Lookup(path)
}

// RemoveToken deletes the token at path from every file that holds it.
// Groups emptied by the removal are pruned.
func (s *Store) RemoveToken(path string) error {
	if !s.loaded {
		return ErrNotLoaded
	}

	next := cloneFiles(s.files)
	removed := false
	for _, file := range sortedKeys(s.files) {
		if _, ok := s.files[file].LookupToken(path); !ok {
			continue
		}
		edit(next, file).Remove(path)
		s.dropIfEmpty(next, file)
		removed = true
	}
	if !removed {
		return notFound(path)
	}
	s.commit(next)
	return nil
}

// MoveToken moves the token at path into targetFile unchanged. The token is
// taken from the first base file holding it, or else the first file of any
// theme.
func (s *Store) MoveToken(path, targetFile string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	source, err := s.owner(path, "")
	if err != nil {
		source = s.firstHolder(path)
		if source == "" {
			return err
		}
	}
	if source == targetFile {
		return fmt.Errorf("%w: %s is already in %s", ErrNoChange, path, targetFile)
	}
	if _, ok := s.lookup(targetFile, path); ok {
		return conflict(path)
	}

	t, _ := s.files[source].LookupToken(path)
	next := cloneFiles(s.files)
	edit(next, source).Remove(path)
	s.dropIfEmpty(next, source)
	if err := edit(next, targetFile).Insert(path, t); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

func (s *Store) firstHolder(path string) string {
	for _, file := range sortedKeys(s.files) {
		if _, ok := s.files[file].LookupToken(path); ok {
			return file
		}
	}
	return ""
}

// RenameGroup moves every node under oldPrefix to newPrefix and rewrites
// every alias pointing under oldPrefix, across all files, as one mutation.
// Prefixes match whole segments. A group renamed onto an existing group is
// merged into it.
func (s *Store) RenameGroup(oldPrefix, newPrefix string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if oldPrefix == "" || newPrefix == "" {
		return conflict("")
	}
	if oldPrefix == newPrefix {
		return fmt.Errorf("%w: %s", ErrNoChange, oldPrefix)
	}

	next := cloneFiles(s.files)
	matched := false
	for _, file := range sortedKeys(s.files) {
		g := s.files[file].Clone()
		changed := false

		if n, ok := g.Lookup(oldPrefix); ok {
			if err := relocate(g, oldPrefix, newPrefix, n); err != nil {
				return err
			}
			changed = true
		}

		g.ReplaceTokens(func(_ string, t *token.Token) *token.Token {
			ref, ok := t.Reference()
			if !ok {
				return t
			}
			renamed, ok := token.ReplacePathPrefix(ref, oldPrefix, newPrefix)
			if !ok {
				return t
			}
			changed = true
			return t.WithValue(token.FormatAlias(renamed))
		})

		if changed {
			next[file] = g
			matched = true
		}
	}
	if !matched {
		return notFound(oldPrefix)
	}
	s.commit(next)
	return nil
}

// relocate moves node n from oldPath to newPath within g. A sibling rename
// keeps the key's position so that renaming back restores the file exactly.
func relocate(g *token.Group, oldPath, newPath string, n token.Node) error {
	oldParent, oldKey := splitLast(oldPath)
	newParent, newKey := splitLast(newPath)
	if oldParent == newParent {
		if parent, ok := g.Lookup(oldParent); ok {
			if pg, ok := parent.(*token.Group); ok && pg.Rename(oldKey, newKey) {
				return nil
			}
		}
	}
	g.Remove(oldPath)
	return graft(g, newPath, n)
}

func splitLast(path string) (parent, key string) {
	segments := token.SplitPath(path)
	return token.JoinPath(segments[:len(segments)-1]...), segments[len(segments)-1]
}

// graft places n at path in g. Groups landing on an existing group are
// merged child by child; any other collision is a conflict.
func graft(g *token.Group, path string, n token.Node) error {
	existing, ok := g.Lookup(path)
	if !ok {
		return g.Insert(path, n)
	}
	dst, dstGroup := existing.(*token.Group)
	src, srcGroup := n.(*token.Group)
	if !dstGroup || !srcGroup {
		return conflict(path)
	}
	if dst.Meta == nil && src.Meta != nil {
		dst.Meta = src.Meta.Clone()
	}
	for _, key := range src.Keys() {
		child, _ := src.Get(key)
		if err := graft(g, token.JoinPath(path, key), child); err != nil {
			return err
		}
	}
	return nil
}
