package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mkvbatch/internal/services"
	"mkvbatch/internal/textutil"
	"mkvbatch/internal/validation"
)

type validateOutput struct {
	SessionID string              `json:"session_id"`
	Results   []validation.Result `json:"results"`
	Blocking  bool                `json:"blocking"`
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check the batch for cross-file inconsistencies",
		Long: "Validate scans the files, applies any requested edits, and compares the\n" +
			"resulting configuration across files. The command fails when a check\n" +
			"reports an error.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.buildSession(cmd, args, &opts)
			if err != nil {
				return err
			}
			results := sess.Validate()
			blocking := validation.Blocking(results)

			if opts.jsonOut {
				if err := writeJSON(cmd, validateOutput{
					SessionID: sess.ID(),
					Results:   nonNilResults(results),
					Blocking:  blocking,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				printValidation(out, results, shouldColorize(out))
			}

			if blocking {
				return services.Wrap(services.ErrValidation, "validate", "",
					fmt.Sprintf("%s reported", textutil.Pluralize(validation.Count(results, validation.Error), "error")), nil)
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
