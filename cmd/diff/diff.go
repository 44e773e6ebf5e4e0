/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diff provides the diff command for tokengraph.
package diff

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/cmd/common"
	tokendiff "bennypowers.dev/tokengraph/diff"
	"bennypowers.dev/tokengraph/load"
	"bennypowers.dev/tokengraph/token"
)

// Cmd is the diff cobra command.
var Cmd = &cobra.Command{
	Use:   "diff --baseline <dir> [files...]",
	Short: "Compare token values against a baseline directory",
	Long: `Compare the tokens of the project with those of a baseline copy, for
example a checkout of the main branch. Paths are matched per theme, so a
token moved between files of one theme is not a change.

Both directories are loaded with their own config unless files are given.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("baseline", "", "Directory holding the baseline token set")
	Cmd.Flags().String("format", "text", "Output format: text, json")
	Cmd.Flags().Bool("exit-code", false, "Exit with an error when there are changes")
	_ = Cmd.MarkFlagRequired("baseline")
}

func run(cmd *cobra.Command, args []string) error {
	baselineDir, _ := cmd.Flags().GetString("baseline")
	format, _ := cmd.Flags().GetString("format")
	exitCode, _ := cmd.Flags().GetBool("exit-code")

	ctx := cmd.Context()
	baseline, err := load.Load(ctx, load.Options{Root: baselineDir, Files: args})
	if err != nil && !errors.Is(err, load.ErrNoFiles) {
		return fmt.Errorf("failed to load baseline: %w", err)
	}
	current, err := load.Load(ctx, load.Options{Root: viper.GetString("root"), Files: args})
	if err != nil {
		return err
	}

	entries := tokendiff.Diff(baselineFiles(baseline), current.Files)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		if entries == nil {
			entries = []tokendiff.Entry{}
		}
		if err := common.WriteJSON(out, entries); err != nil {
			return err
		}
	default:
		common.PrintDiff(out, entries)
	}

	if exitCode && len(entries) > 0 {
		return fmt.Errorf("%d tokens changed", len(entries))
	}
	return nil
}

// baselineFiles treats a baseline without token files as empty, so that
// every current token shows as added.
func baselineFiles(ws *load.Workspace) map[string]*token.Group {
	if ws == nil {
		return map[string]*token.Group{}
	}
	return ws.Files
}
