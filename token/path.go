/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "strings"

// PathSeparator joins path segments.
const PathSeparator = "."

// JoinPath joins segments into a dot path.
func JoinPath(segments ...string) string {
	return strings.Join(segments, PathSeparator)
}

// SplitPath splits a dot path into segments. The empty path has no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// HasPathPrefix reports whether path equals prefix or lies beneath it.
// Matching is per segment: "color" is a prefix of "color.red" but not of "colors.red".
func HasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+PathSeparator)
}

// ReplacePathPrefix swaps oldPrefix for newPrefix at the start of path.
// Returns path unchanged and false when oldPrefix does not apply.
func ReplacePathPrefix(path, oldPrefix, newPrefix string) (string, bool) {
	if !HasPathPrefix(path, oldPrefix) {
		return path, false
	}
	return newPrefix + path[len(oldPrefix):], true
}
