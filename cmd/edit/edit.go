/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package edit provides the commands that change token files: set, add, rm,
// mv and rename. Each applies one mutation, prints the resulting diff and
// writes the files it changed.
package edit

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/cmd/common"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/store"
	"bennypowers.dev/tokengraph/token"
)

// SetCmd replaces a token's value.
var SetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a token's value",
	Long: `Set the $value of a token. With --theme, the token of that theme's
variant file is edited instead of the base token.

The value is read as JSON when it parses, so numbers, arrays and objects
keep their type; anything else is a string, including aliases like
{color.blue.500}.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := parseValue(args[1])
		return apply(cmd, func(s *store.Store) error {
			return s.UpdateToken(args[0], value, viper.GetString("theme"))
		})
	},
}

// AddCmd adds a token to a file.
var AddCmd = &cobra.Command{
	Use:   "add <path> <type> <value> --file <file>",
	Short: "Add a token",
	Long:  `Add a token to a file, creating the file and intermediate groups as needed.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		value := parseValue(args[2])
		return apply(cmd, func(s *store.Store) error {
			return s.AddToken(args[0], token.Type(args[1]), value, file)
		})
	},
}

// RemoveCmd removes a token.
var RemoveCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove a token from every file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(cmd, func(s *store.Store) error {
			return s.RemoveToken(args[0])
		})
	},
}

// MoveCmd moves a token between files.
var MoveCmd = &cobra.Command{
	Use:   "mv <path> <file>",
	Short: "Move a token to another file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(cmd, func(s *store.Store) error {
			return s.MoveToken(args[0], args[1])
		})
	},
}

// RenameCmd renames a group and rewrites aliases into it.
var RenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a group and update every alias pointing into it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return apply(cmd, func(s *store.Store) error {
			return s.RenameGroup(args[0], args[1])
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{SetCmd, AddCmd, RemoveCmd, MoveCmd, RenameCmd} {
		c.Flags().Bool("dry-run", false, "Print the changes without writing files")
	}
	AddCmd.Flags().String("file", "", "File to add the token to, relative to the project root")
	_ = AddCmd.MarkFlagRequired("file")
}

// parseValue reads arg as JSON, falling back to the plain string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err == nil {
		return v
	}
	return arg
}

func apply(cmd *cobra.Command, mutate func(*store.Store) error) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ws, s, err := common.Open(cmd.Context(), nil)
	if err != nil {
		return err
	}
	if err := mutate(s); err != nil {
		return err
	}

	common.PrintDiff(cmd.OutOrStdout(), s.Diff())
	if dryRun {
		return nil
	}

	saved, err := ws.Write(s, s.DirtyFiles())
	for _, path := range saved.Written {
		logger.Info("wrote %s", path)
	}
	for _, path := range saved.Removed {
		logger.Info("removed %s", path)
	}
	return err
}
