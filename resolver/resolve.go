/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/tokengraph/token"
)

// Resolve follows an alias chain starting at value and returns the concrete
// value at its end. path is the token that owns value and seeds the visited
// set.
//
// Resolution never fails. When a hop's target is missing, the alias string at
// that hop is returned unchanged. When the next hop would revisit a token
// already walked, the last alias string encountered is returned.
func Resolve(value any, tokens map[string]*token.Token, path string) any {
	visited := map[string]bool{path: true}
	current := value
	for {
		ref, ok := token.ParseAlias(current)
		if !ok {
			return current
		}
		if visited[ref] {
			return current
		}
		target, ok := tokens[ref]
		if !ok {
			return current
		}
		visited[ref] = true
		current = target.Value
	}
}

// Resolved is the outcome of resolving one token.
type Resolved struct {
	Entry token.Entry

	// Value is the resolved value, or the fail-soft fallback.
	Value any

	// Reference is the one-hop alias target, empty for literal tokens.
	Reference string
}

// ResolveAll resolves every entry against the index of the same entries.
// When a path occurs more than once, the last entry is the one aliases see.
func ResolveAll(entries []token.Entry) []Resolved {
	index := token.Index(entries)
	out := make([]Resolved, 0, len(entries))
	for _, e := range entries {
		ref, _ := e.Token.Reference()
		out = append(out, Resolved{
			Entry:     e,
			Value:     Resolve(e.Token.Value, index, e.Path),
			Reference: ref,
		})
	}
	return out
}
