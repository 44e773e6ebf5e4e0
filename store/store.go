/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package store owns a multi-file token set and keeps its resolved view,
// dirty files and undo history consistent across mutations.
//
// Files are copy-on-write: a mutation clones the files it touches into a new
// file map and leaves the previous map untouched, so snapshots share every
// file the mutation did not change.
package store

import (
	"maps"
	"sort"
	"time"

	"bennypowers.dev/tokengraph/diff"
	"bennypowers.dev/tokengraph/internal/collections"
	"bennypowers.dev/tokengraph/resolver"
	"bennypowers.dev/tokengraph/theme"
	"bennypowers.dev/tokengraph/token"
	"bennypowers.dev/tokengraph/validator"
)

// MaxUndoStack is the default number of undo snapshots kept.
const MaxUndoStack = 50

// ResolvedToken is the read-only projection of one token in the active theme.
type ResolvedToken struct {
	Path          string     `json:"path"`
	Type          token.Type `json:"type"`
	RawValue      any        `json:"rawValue"`
	ResolvedValue any        `json:"resolvedValue"`
	SourceFile    string     `json:"sourceFile"`
	Reference     string     `json:"reference,omitempty"`
	Description   string     `json:"description,omitempty"`
}

// Option configures a Store.
type Option func(*Store)

// WithUndoLimit caps the undo and redo stacks at n snapshots.
func WithUndoLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.undoLimit = n
		}
	}
}

// WithClock sets the time source for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a token set with undo history. It is not safe for concurrent use.
type Store struct {
	files    map[string]*token.Group
	baseline map[string]*token.Group
	// baselineJSON caches the canonical encoding of each baseline file.
	baselineJSON map[string]string
	dirty        collections.Set[string]

	activeTheme string
	themes      []string

	undo []Snapshot
	redo []Snapshot

	resolved []ResolvedToken
	byPath   map[string]int
	graph    *resolver.DependencyGraph

	loaded    bool
	undoLimit int
	now       func() time.Time
}

// New creates an empty store. Call Load before anything else.
func New(opts ...Option) *Store {
	s := &Store{
		files:        map[string]*token.Group{},
		baseline:     map[string]*token.Group{},
		baselineJSON: map[string]string{},
		dirty:        collections.NewSet[string](),
		activeTheme:  theme.Default,
		themes:       []string{theme.Default},
		byPath:       map[string]int{},
		graph:        resolver.BuildDependencyGraph(nil),
		undoLimit:    MaxUndoStack,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the whole token set. The given files become the new baseline;
// dirty files and history are cleared and the light theme becomes active.
// The store keeps its own copy of files.
func (s *Store) Load(files map[string]*token.Group) {
	s.files = deepCopy(files)
	s.rebase()
	s.undo = nil
	s.redo = nil
	s.activeTheme = theme.Default
	s.loaded = true
	s.refresh()
}

// Rebase makes the current files the new baseline, e.g. after they were
// written to disk. History is kept.
func (s *Store) Rebase() {
	s.rebase()
	s.refresh()
}

func (s *Store) rebase() {
	s.baseline = deepCopy(s.files)
	s.baselineJSON = make(map[string]string, len(s.baseline))
	for name, g := range s.baseline {
		s.baselineJSON[name] = token.CanonicalJSON(g)
	}
}

// Loaded reports whether Load has been called.
func (s *Store) Loaded() bool {
	return s.loaded
}

// refresh recomputes everything derived from files: themes, the resolved
// view and the dirty set.
func (s *Store) refresh() {
	s.themes = theme.Detect(s.files)
	if !theme.Has(s.files, s.activeTheme) {
		s.activeTheme = theme.Default
	}
	s.resolve()
	s.recomputeDirty()
}

func (s *Store) resolve() {
	entries := theme.ActiveSet(s.files, s.activeTheme)
	s.graph = resolver.BuildDependencyGraph(entries)
	s.resolved = make([]ResolvedToken, 0, len(entries))
	s.byPath = make(map[string]int, len(entries))
	for _, r := range resolver.ResolveAll(entries) {
		s.byPath[r.Entry.Path] = len(s.resolved)
		s.resolved = append(s.resolved, ResolvedToken{
			Path:          r.Entry.Path,
			Type:          r.Entry.Token.Type,
			RawValue:      r.Entry.Token.Value,
			ResolvedValue: r.Value,
			SourceFile:    r.Entry.SourceFile,
			Reference:     r.Reference,
			Description:   r.Entry.Token.Description,
		})
	}
}

// recomputeDirty compares every file with its baseline. Content equality
// decides, so a file edited and then edited back is clean.
func (s *Store) recomputeDirty() {
	s.dirty = collections.NewSet[string]()
	for name, g := range s.files {
		if token.CanonicalJSON(g) != s.baselineJSON[name] {
			s.dirty.Add(name)
		}
	}
	for name := range s.baseline {
		if _, ok := s.files[name]; !ok {
			s.dirty.Add(name)
		}
	}
}

// ListResolvedTokens returns the resolved tokens of the active theme in
// document order. A non-empty category keeps only tokens of that type.
func (s *Store) ListResolvedTokens(category string) []ResolvedToken {
	out := make([]ResolvedToken, 0, len(s.resolved))
	for _, t := range s.resolved {
		if category == "" || string(t.Type) == category {
			out = append(out, t.detach())
		}
	}
	return out
}

// GetResolvedToken returns the resolved token at path in the active theme.
func (s *Store) GetResolvedToken(path string) (ResolvedToken, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return ResolvedToken{}, false
	}
	return s.resolved[i].detach(), true
}

// detach copies the composite values so callers never hold the store's own
// *token.Object or []any.
func (rt ResolvedToken) detach() ResolvedToken {
	rt.RawValue = token.CloneValue(rt.RawValue)
	rt.ResolvedValue = token.CloneValue(rt.ResolvedValue)
	return rt
}

// Dependents returns the paths of tokens in the active theme that alias path.
func (s *Store) Dependents(path string) []string {
	return s.graph.Dependents(path)
}

// ValidationResults validates every file of every theme.
func (s *Store) ValidationResults() []validator.Result {
	return validator.Validate(s.files)
}

// Diff compares the baseline with the current files.
func (s *Store) Diff() []diff.Entry {
	return diff.Diff(s.baseline, s.files)
}

// ActiveTheme returns the theme used for resolution.
func (s *Store) ActiveTheme() string {
	return s.activeTheme
}

// Themes lists the themes present in the files, light first.
func (s *Store) Themes() []string {
	return append([]string(nil), s.themes...)
}

// SetActiveTheme switches the theme used for resolution. It does not touch
// the undo history.
func (s *Store) SetActiveTheme(name string) error {
	if !theme.Has(s.files, name) {
		return unknownTheme(name)
	}
	s.activeTheme = name
	s.resolve()
	return nil
}

// Files returns the file keys in sorted order.
func (s *Store) Files() []string {
	return sortedKeys(s.files)
}

// DirtyFiles returns the sorted keys of files that differ from the baseline.
func (s *Store) DirtyFiles() []string {
	return collections.Sorted(s.dirty)
}

// IsDirty reports whether a file differs from the baseline.
func (s *Store) IsDirty(file string) bool {
	return s.dirty.Has(file)
}

func sortedKeys(files map[string]*token.Group) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deepCopy(files map[string]*token.Group) map[string]*token.Group {
	out := make(map[string]*token.Group, len(files))
	for name, g := range files {
		if g == nil {
			g = token.NewGroup()
		}
		out[name] = g.DeepCopy()
	}
	return out
}

func cloneFiles(files map[string]*token.Group) map[string]*token.Group {
	return maps.Clone(files)
}
