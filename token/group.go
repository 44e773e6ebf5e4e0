/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"errors"
	"fmt"
)

// ErrPathConflict indicates a path runs through a token where a group is needed.
var ErrPathConflict = errors.New("path conflicts with an existing token")

// Group represents a group of tokens (can be nested). Child order is
// insertion order of the source document.
type Group struct {
	// Meta holds the group's own $-prefixed keys ($description, $type, $extensions, ...).
	Meta *Object

	keys     []string
	children map[string]Node

	// layout is the source order of every key, metadata and children alike.
	layout []string
}

func (*Group) node() {}

// NewGroup creates a new empty token group.
func NewGroup() *Group {
	return &Group{children: make(map[string]Node)}
}

// Keys returns child keys in order.
func (g *Group) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	return len(g.keys)
}

// Get returns a direct child.
func (g *Group) Get(key string) (Node, bool) {
	n, ok := g.children[key]
	return n, ok
}

// Set stores a direct child. Existing keys keep their position.
func (g *Group) Set(key string, n Node) {
	if g.children == nil {
		g.children = make(map[string]Node)
	}
	if _, exists := g.children[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.children[key] = n
}

// Delete removes a direct child, reporting whether it existed.
func (g *Group) Delete(key string) bool {
	if _, exists := g.children[key]; !exists {
		return false
	}
	delete(g.children, key)
	g.keys = without(g.keys, key)
	g.layout = without(g.layout, key)
	return true
}

func without(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}
	return keys
}

// Rename changes a child's key, keeping its position. It reports false when
// oldKey is missing or newKey is taken by a child or a metadata key.
func (g *Group) Rename(oldKey, newKey string) bool {
	n, ok := g.children[oldKey]
	if !ok {
		return false
	}
	if _, taken := g.children[newKey]; taken {
		return false
	}
	if _, taken := g.Meta.Get(newKey); taken {
		return false
	}
	delete(g.children, oldKey)
	g.children[newKey] = n
	for _, keys := range [][]string{g.keys, g.layout} {
		for i, k := range keys {
			if k == oldKey {
				keys[i] = newKey
				break
			}
		}
	}
	return true
}

// Lookup finds the node at a dot path.
func (g *Group) Lookup(path string) (Node, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return g, true
	}
	current := g
	for i, seg := range segments {
		n, ok := current.children[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return n, true
		}
		next, ok := n.(*Group)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// LookupToken finds the token at a dot path.
func (g *Group) LookupToken(path string) (*Token, bool) {
	n, ok := g.Lookup(path)
	if !ok {
		return nil, false
	}
	t, ok := n.(*Token)
	return t, ok
}

// Insert places n at path, creating intermediate groups as needed.
// An existing node at path is replaced in place.
func (g *Group) Insert(path string, n Node) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty path", ErrPathConflict)
	}
	current := g
	for _, seg := range segments[:len(segments)-1] {
		child, ok := current.children[seg]
		if !ok {
			next := NewGroup()
			current.Set(seg, next)
			current = next
			continue
		}
		next, ok := child.(*Group)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathConflict, path)
		}
		current = next
	}
	current.Set(segments[len(segments)-1], n)
	return nil
}

// Remove deletes the node at path. Groups left empty by the removal are
// pruned, up to (not including) the receiver.
func (g *Group) Remove(path string) bool {
	return g.remove(SplitPath(path))
}

func (g *Group) remove(segments []string) bool {
	if len(segments) == 0 {
		return false
	}
	if len(segments) == 1 {
		return g.Delete(segments[0])
	}
	child, ok := g.children[segments[0]].(*Group)
	if !ok {
		return false
	}
	if !child.remove(segments[1:]) {
		return false
	}
	if child.Len() == 0 && child.Meta.Len() == 0 {
		g.Delete(segments[0])
	}
	return true
}

// Clone copies the group structure. Tokens are shared, since they are immutable.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := &Group{
		keys:     append([]string(nil), g.keys...),
		children: make(map[string]Node, len(g.children)),
		layout:   append([]string(nil), g.layout...),
	}
	if g.Meta != nil {
		c.Meta = g.Meta.Clone()
	}
	for k, n := range g.children {
		switch x := n.(type) {
		case *Group:
			c.children[k] = x.Clone()
		default:
			c.children[k] = x
		}
	}
	return c
}

// DeepCopy copies the group including every token, so the result shares no
// memory with the receiver.
func (g *Group) DeepCopy() *Group {
	if g == nil {
		return nil
	}
	c := g.Clone()
	c.ReplaceTokens(func(_ string, t *Token) *Token { return t.Clone() })
	return c
}

// ReplaceTokens rewrites every token in place with the result of fn.
// fn receives the token's path relative to the receiver.
func (g *Group) ReplaceTokens(fn func(path string, t *Token) *Token) {
	g.replaceTokens("", fn)
}

func (g *Group) replaceTokens(prefix string, fn func(path string, t *Token) *Token) {
	for _, k := range g.keys {
		path := k
		if prefix != "" {
			path = prefix + PathSeparator + k
		}
		switch x := g.children[k].(type) {
		case *Token:
			g.children[k] = fn(path, x)
		case *Group:
			x.replaceTokens(path, fn)
		}
	}
}

