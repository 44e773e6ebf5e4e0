/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for tokengraph.
package list

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tokengraph/cmd/common"
	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/token"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List resolved tokens",
	Long: `List every token of the active theme with its resolved value.

Files default to the patterns in .config/design-tokens.yaml.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().String("format", "table", "Output format: table, json")
	Cmd.Flags().Bool("group", false, "Group table rows under their top-level group")
}

func run(cmd *cobra.Command, args []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	format, _ := cmd.Flags().GetString("format")
	grouped, _ := cmd.Flags().GetBool("group")

	_, s, err := common.Open(cmd.Context(), args)
	if err != nil {
		return err
	}
	tokens := s.ListResolvedTokens(typeFilter)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return common.WriteJSON(out, tokens)
	case "table":
		writeTable(out, tokens, grouped)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeTable(w io.Writer, tokens []store.ResolvedToken, grouped bool) {
	pathWidth, typeWidth := 4, 4
	for _, t := range tokens {
		pathWidth = max(pathWidth, len(t.Path))
		typeWidth = max(typeWidth, len(t.Type))
	}

	if grouped {
		tokens = slices.Clone(tokens)
		slices.SortStableFunc(tokens, func(a, b store.ResolvedToken) int {
			return strings.Compare(groupHeading(a.Path), groupHeading(b.Path))
		})
	}

	heading := ""
	for _, t := range tokens {
		if grouped {
			if h := groupHeading(t.Path); h != heading {
				if heading != "" {
					fmt.Fprintln(w)
				}
				heading = h
				fmt.Fprintln(w, heading)
			}
		}
		typ := string(t.Type)
		if typ == "" {
			typ = "-"
		}
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", pathWidth, t.Path, typeWidth, typ, displayValue(t))
	}
}

var title = cases.Title(language.English)

// groupHeading is the title-cased top-level segment of path.
func groupHeading(path string) string {
	top, _, _ := strings.Cut(path, token.PathSeparator)
	return title.String(top)
}

// displayValue renders the resolved value, normalizing colors to hex. Values
// that stayed aliases print with the raw alias for context.
func displayValue(t store.ResolvedToken) string {
	if ref, ok := token.ParseAlias(t.ResolvedValue); ok {
		return fmt.Sprintf("%s (unresolved)", token.FormatAlias(ref))
	}
	if t.Type == token.TypeColor {
		if s, ok := t.ResolvedValue.(string); ok {
			if c, err := csscolorparser.Parse(s); err == nil {
				return c.HexString()
			}
		}
	}
	return common.FormatValue(t.ResolvedValue)
}
