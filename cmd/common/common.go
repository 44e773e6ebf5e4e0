/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package common holds helpers shared by the tokengraph commands.
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/diff"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/load"
	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/theme"
)

// Open loads the workspace under the --root directory and a store over it.
// files, when given, replace the config's file patterns. The --theme flag
// (or TOKENGRAPH_THEME) overrides the configured theme.
func Open(ctx context.Context, files []string) (*load.Workspace, *store.Store, error) {
	ws, err := load.Load(ctx, load.Options{
		Root:  viper.GetString("root"),
		Files: files,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded %d files from %s", len(ws.Files), ws.Root)

	s := ws.NewStore()
	if name := viper.GetString("theme"); name != "" {
		if err := s.SetActiveTheme(name); err != nil {
			return nil, nil, err
		}
	}
	return ws, s, nil
}

// FormatValue renders a token value for a table cell. Strings print bare;
// composite values print as compact JSON.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

var changeMarks = map[diff.ChangeType]string{
	diff.Added:    "+",
	diff.Modified: "~",
	diff.Removed:  "-",
}

// PrintDiff writes one line per entry and a summary line.
func PrintDiff(w io.Writer, entries []diff.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No changes")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s %s", changeMarks[e.Type], e.Path)
		if e.Theme != theme.Default {
			line += fmt.Sprintf(" [%s]", e.Theme)
		}
		switch e.Type {
		case diff.Added:
			line += ": " + FormatValue(e.After)
		case diff.Removed:
			line += ": " + FormatValue(e.Before)
		case diff.Modified:
			line += fmt.Sprintf(": %s -> %s", FormatValue(e.Before), FormatValue(e.After))
			if e.ColorDelta > 0 {
				line += fmt.Sprintf(" (ΔE %.1f)", e.ColorDelta)
			}
		}
		fmt.Fprintln(w, line)
	}
	s := diff.Summarize(entries)
	fmt.Fprintf(w, "\n%d added, %d modified, %d removed\n", s.Added, s.Modified, s.Removed)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
