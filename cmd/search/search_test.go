/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package search

import (
	"testing"

	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/token"
)

func TestFilter(t *testing.T) {
	tokens := []store.ResolvedToken{
		{Path: "blue.500", Type: token.TypeColor, RawValue: "#3B82F6", ResolvedValue: "#3B82F6"},
		{Path: "background.primary", Type: token.TypeColor, RawValue: "{blue.500}", ResolvedValue: "#3B82F6", Description: "Main surface"},
		{Path: "spacing.sm", Type: token.TypeDimension, RawValue: "4px", ResolvedValue: "4px"},
	}

	tests := []struct {
		name  string
		query string
		regex bool
		want  int
	}{
		{"path substring", "spacing", false, 1},
		{"case insensitive value", "#3b82f6", false, 2},
		{"alias text", "{blue", false, 1},
		{"description", "surface", false, 1},
		{"regex", `^b.*\.\d+$`, true, 1},
		{"no match", "red", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := matcher(tt.query, tt.regex)
			if err != nil {
				t.Fatalf("matcher() error = %v", err)
			}
			if got := filter(tokens, match); len(got) != tt.want {
				t.Errorf("filter() returned %d tokens, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestMatcher_InvalidRegex(t *testing.T) {
	if _, err := matcher("(", true); err == nil {
		t.Error("expected error for invalid regex")
	}
}
