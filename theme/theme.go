/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package theme derives theme layers from token file names and overlays the
// active layer onto the base set.
//
// A file named <base>.<theme>.json is the <theme> variant of <base>.json.
// Files without a suffix, or with the suffix "light", form the default layer.
package theme

import (
	"regexp"
	"slices"
	"sort"

	"bennypowers.dev/tokengraph/token"
)

// Default is the theme of every file without a theme suffix.
const Default = "light"

var suffixPattern = regexp.MustCompile(`^(.*)\.([^./]+)\.json$`)

// Parse splits a file key into its base file and theme.
// Parse("colors.dark.json") returns ("colors.json", "dark");
// Parse("colors.json") returns ("colors.json", "light").
func Parse(file string) (base, theme string) {
	m := suffixPattern.FindStringSubmatch(file)
	if m == nil || m[2] == Default {
		if m != nil {
			return m[1] + ".json", Default
		}
		return file, Default
	}
	return m[1] + ".json", m[2]
}

// Of returns the theme layer a file belongs to.
func Of(file string) string {
	_, theme := Parse(file)
	return theme
}

// Detect lists the themes present in files, light first and the rest in
// alphabetical order. Light is always present.
func Detect(files map[string]*token.Group) []string {
	seen := map[string]bool{Default: true}
	var others []string
	for file := range files {
		theme := Of(file)
		if !seen[theme] {
			seen[theme] = true
			others = append(others, theme)
		}
	}
	sort.Strings(others)
	return append([]string{Default}, others...)
}

// Has reports whether theme is one of the themes detected in files.
func Has(files map[string]*token.Group, theme string) bool {
	return slices.Contains(Detect(files), theme)
}

// FilesFor returns the sorted keys of the files in the given theme layer.
func FilesFor(files map[string]*token.Group, theme string) []string {
	var keys []string
	for file := range files {
		if Of(file) == theme {
			keys = append(keys, file)
		}
	}
	sort.Strings(keys)
	return keys
}

// ActiveSet flattens the base layer and, unless active is light, overlays the
// active theme's tokens on it. An overriding entry takes the place of the base
// entry with the same path; new paths are appended. Other themes' files are
// left out.
func ActiveSet(files map[string]*token.Group, active string) []token.Entry {
	var entries []token.Entry
	position := make(map[string]int)
	overlay := func(layer string) {
		for _, file := range FilesFor(files, layer) {
			for _, e := range token.Flatten(files[file], file) {
				if i, ok := position[e.Path]; ok {
					entries[i] = e
					continue
				}
				position[e.Path] = len(entries)
				entries = append(entries, e)
			}
		}
	}
	overlay(Default)
	if active != "" && active != Default {
		overlay(active)
	}
	return entries
}
