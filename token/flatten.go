/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// Entry is one flattened token with its address and owning file.
type Entry struct {
	Path       string
	Token      *Token
	SourceFile string
}

// Flatten walks a file tree depth-first in insertion order and returns every
// token with its dot path.
func Flatten(file *Group, sourceFile string) []Entry {
	var entries []Entry
	flatten(file, "", sourceFile, &entries)
	return entries
}

func flatten(g *Group, prefix, sourceFile string, entries *[]Entry) {
	if g == nil {
		return
	}
	for _, key := range g.keys {
		path := key
		if prefix != "" {
			path = prefix + PathSeparator + key
		}
		switch n := g.children[key].(type) {
		case *Token:
			*entries = append(*entries, Entry{Path: path, Token: n, SourceFile: sourceFile})
		case *Group:
			flatten(n, path, sourceFile, entries)
		}
	}
}

// Index maps entries by path. Later entries win on collision.
func Index(entries []Entry) map[string]*Token {
	m := make(map[string]*Token, len(entries))
	for _, e := range entries {
		m[e.Path] = e.Token
	}
	return m
}
