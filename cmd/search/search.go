/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for tokengraph.
package search

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokengraph/cmd/common"
	"bennypowers.dev/tokengraph/store"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query> [files...]",
	Short: "Search tokens by path, value, or description",
	Long:  `Search the resolved tokens of the active theme by path, raw or resolved value, or description, with optional regex support.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	typeFilter, _ := cmd.Flags().GetString("type")
	useRegex, _ := cmd.Flags().GetBool("regex")
	format, _ := cmd.Flags().GetString("format")

	match, err := matcher(query, useRegex)
	if err != nil {
		return err
	}

	_, s, err := common.Open(cmd.Context(), args[1:])
	if err != nil {
		return err
	}
	matches := filter(s.ListResolvedTokens(typeFilter), match)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return common.WriteJSON(out, matches)
	case "names":
		for _, t := range matches {
			fmt.Fprintln(out, t.Path)
		}
		return nil
	default:
		writeTable(out, matches)
		return nil
	}
}

// matcher returns a case-insensitive substring test, or a regex test.
func matcher(query string, useRegex bool) (func(string) bool, error) {
	if useRegex {
		pattern, err := regexp.Compile(query)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		return pattern.MatchString, nil
	}
	query = strings.ToLower(query)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), query)
	}, nil
}

func filter(tokens []store.ResolvedToken, match func(string) bool) []store.ResolvedToken {
	var out []store.ResolvedToken
	for _, t := range tokens {
		if match(t.Path) ||
			match(common.FormatValue(t.RawValue)) ||
			match(common.FormatValue(t.ResolvedValue)) ||
			(t.Description != "" && match(t.Description)) {
			out = append(out, t)
		}
	}
	return out
}

func writeTable(w io.Writer, tokens []store.ResolvedToken) {
	if len(tokens) == 0 {
		return
	}

	pathWidth := 4
	for _, t := range tokens {
		pathWidth = max(pathWidth, len(t.Path))
	}
	for _, t := range tokens {
		fmt.Fprintf(w, "%-*s  %s  (%s)\n", pathWidth, t.Path, common.FormatValue(t.ResolvedValue), t.SourceFile)
	}
}
