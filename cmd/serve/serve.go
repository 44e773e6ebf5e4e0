/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command for tokengraph.
package serve

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/cmd/common"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/mcpserver"
)

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve [files...]",
	Short: "Serve the token set to MCP clients over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout. Clients can list,
inspect, edit and validate tokens, undo and redo edits, review the diff and
save changed files.

Logging is silenced unless --verbose is set, in which case it goes to stderr.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	if !viper.GetBool("verbose") {
		logger.SetOutput(io.Discard)
	}

	ws, s, err := common.Open(cmd.Context(), args)
	if err != nil {
		return err
	}
	return mcpserver.New(s, ws).Run(cmd.Context())
}
