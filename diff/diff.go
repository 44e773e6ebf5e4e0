/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diff compares two multi-file token sets.
package diff

import (
	"sort"

	"bennypowers.dev/tokengraph/theme"
	"bennypowers.dev/tokengraph/token"
)

// ChangeType classifies a diff entry.
type ChangeType string

const (
	Added    ChangeType = "added"
	Modified ChangeType = "modified"
	Removed  ChangeType = "removed"
)

// Entry is one changed token path.
type Entry struct {
	Path   string     `json:"path"`
	Type   ChangeType `json:"type"`
	Before any        `json:"before,omitempty"`
	After  any        `json:"after,omitempty"`

	// Theme is the theme layer the path belongs to.
	Theme string `json:"theme"`

	// ColorDelta is the CIEDE2000 distance between Before and After for
	// modified color values, zero otherwise.
	ColorDelta float64 `json:"colorDelta,omitempty"`
}

type key struct {
	theme string
	path  string
}

type leaf struct {
	typ   token.Type
	value any
}

// flatten maps every token of every file by theme layer and path. File
// ownership is dropped, so a move between files of one layer is invisible.
func flatten(files map[string]*token.Group) map[key]leaf {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[key]leaf)
	for _, name := range names {
		layer := theme.Of(name)
		for _, e := range token.Flatten(files[name], name) {
			out[key{layer, e.Path}] = leaf{e.Token.Type, e.Token.Value}
		}
	}
	return out
}

// Diff reports added, removed and modified token values between baseline and
// current, sorted by path then theme. Values are compared structurally.
func Diff(baseline, current map[string]*token.Group) []Entry {
	before := flatten(baseline)
	after := flatten(current)

	var entries []Entry
	for k, a := range after {
		b, ok := before[k]
		switch {
		case !ok:
			entries = append(entries, Entry{Path: k.path, Theme: k.theme, Type: Added, After: a.value})
		case token.CanonicalJSON(a.value) != token.CanonicalJSON(b.value):
			e := Entry{Path: k.path, Theme: k.theme, Type: Modified, Before: b.value, After: a.value}
			if a.typ == token.TypeColor && b.typ == token.TypeColor {
				e.ColorDelta, _ = ColorDelta(b.value, a.value)
			}
			entries = append(entries, e)
		}
	}
	for k, b := range before {
		if _, ok := after[k]; !ok {
			entries = append(entries, Entry{Path: k.path, Theme: k.theme, Type: Removed, Before: b.value})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Theme < entries[j].Theme
	})
	return entries
}

// Summary counts entries per change type.
type Summary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Removed  int `json:"removed"`
}

// Total is the number of changed paths.
func (s Summary) Total() int {
	return s.Added + s.Modified + s.Removed
}

// Summarize counts entries per change type.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Type {
		case Added:
			s.Added++
		case Modified:
			s.Modified++
		case Removed:
			s.Removed++
		}
	}
	return s
}
