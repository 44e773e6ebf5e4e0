/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tokengraph.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/cmd/diff"
	"bennypowers.dev/tokengraph/cmd/edit"
	"bennypowers.dev/tokengraph/cmd/list"
	"bennypowers.dev/tokengraph/cmd/search"
	"bennypowers.dev/tokengraph/cmd/serve"
	"bennypowers.dev/tokengraph/cmd/validate"
	"bennypowers.dev/tokengraph/cmd/version"
	"bennypowers.dev/tokengraph/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tokengraph",
	Short: "Inspect, validate and edit design token sets",
	Long: `tokengraph loads a multi-file set of design token files, defined by the
Design Tokens Community Group specification, resolves aliases per theme,
reports integrity problems and applies edits that keep every alias intact.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(viper.GetBool("verbose"))
	},
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("root", "r", ".", "Project directory holding .config/design-tokens.yaml")
	flags.StringP("theme", "t", "", "Theme to resolve (default: config theme, then light)")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")

	for _, name := range []string{"root", "theme", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("TOKENGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(diff.Cmd)
	rootCmd.AddCommand(edit.SetCmd, edit.AddCmd, edit.RemoveCmd, edit.MoveCmd, edit.RenameCmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
