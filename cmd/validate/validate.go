/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tokengraph.
package validate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokengraph/cmd/common"
	"bennypowers.dev/tokengraph/internal/logger"
	"bennypowers.dev/tokengraph/validator"
)

// ErrValidationFailed is returned when validation reports errors, or
// warnings under --strict.
var ErrValidationFailed = errors.New("validation failed")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate design token files",
	Long: `Validate every file of every theme for duplicate paths, broken and
circular references, type mismatches and invalid values.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().Bool("watch", false, "Re-validate whenever a token file changes")
}

type options struct {
	files  []string
	strict bool
	quiet  bool
}

func run(cmd *cobra.Command, args []string) error {
	opts := options{files: args}
	opts.strict, _ = cmd.Flags().GetBool("strict")
	opts.quiet, _ = cmd.Flags().GetBool("quiet")
	watching, _ := cmd.Flags().GetBool("watch")

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !watching {
		return check(ctx, out, opts)
	}

	w, err := newWatcher(viper.GetString("root"))
	if err != nil {
		return err
	}
	defer w.Close()

	_ = check(ctx, out, opts)
	return w.Run(ctx, debounce, func() {
		fmt.Fprintln(out)
		if err := check(ctx, out, opts); err != nil && !errors.Is(err, ErrValidationFailed) {
			logger.Error("%v", err)
		}
	})
}

func check(ctx context.Context, out io.Writer, opts options) error {
	_, s, err := common.Open(ctx, opts.files)
	if err != nil {
		return err
	}

	results := s.ValidationResults()
	report(out, results, opts.quiet)

	errs := validator.Filter(results, validator.SeverityError)
	warnings := validator.Filter(results, validator.SeverityWarning)
	if len(errs) > 0 || (opts.strict && len(warnings) > 0) {
		return fmt.Errorf("%w: %d errors, %d warnings", ErrValidationFailed, len(errs), len(warnings))
	}
	if !opts.quiet {
		fmt.Fprintf(out, "All %d files valid.\n", len(s.Files()))
	}
	return nil
}

// report prints one line per result. quiet drops warnings.
func report(w io.Writer, results []validator.Result, quiet bool) {
	for _, r := range results {
		if quiet && r.Severity != validator.SeverityError {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s\n", r.Severity, r.Code, r.Error())
	}
}
