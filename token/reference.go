/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "regexp"

// aliasPattern matches a whole-value alias: {color.primary}
var aliasPattern = regexp.MustCompile(`^\{([^}]+)\}$`)

// ParseAlias extracts the target path from a whole-value alias.
// Only strings of the exact form "{path}" are aliases.
func ParseAlias(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	matches := aliasPattern.FindStringSubmatch(s)
	if len(matches) != 2 {
		return "", false
	}
	return matches[1], true
}

// IsAlias reports whether value is a whole-value alias.
func IsAlias(value any) bool {
	_, ok := ParseAlias(value)
	return ok
}

// FormatAlias builds the alias string for a path.
func FormatAlias(path string) string {
	return "{" + path + "}"
}
