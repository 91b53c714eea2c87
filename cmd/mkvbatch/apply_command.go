package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mkvbatch/internal/logging"
	"mkvbatch/internal/mkvpropedit"
	"mkvbatch/internal/preflight"
	"mkvbatch/internal/services"
	"mkvbatch/internal/session"
	"mkvbatch/internal/textutil"
	"mkvbatch/internal/validation"
)

type applyOutput struct {
	SessionID  string               `json:"session_id"`
	Validation []validation.Result  `json:"validation"`
	Results    []mkvpropedit.Result `json:"results"`
}

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var opts batchOptions
	var force bool

	cmd := &cobra.Command{
		Use:   "apply FILE...",
		Short: "Write the requested edits to every file with mkvpropedit",
		Long: "Apply builds the same session as plan and runs mkvpropedit once per file\n" +
			"that has pending changes. Files are edited in place, one at a time.\n" +
			"Validation errors abort the run unless --force is given.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sess, err := ctx.buildSession(cmd, args, &opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := sess.Validate()
			if validation.Blocking(results) {
				if !force {
					if !opts.jsonOut {
						printValidation(out, results, colorize)
					}
					return services.Wrap(services.ErrValidation, "apply", "",
						fmt.Sprintf("%s reported; use --force to apply anyway", textutil.Pluralize(validation.Count(results, validation.Error), "error")), nil)
				}
				logging.WarnWithContext(ctx.log(), "applying despite validation errors", "validation_forced",
					logging.String(logging.FieldSessionID, sess.ID()),
					logging.Int("errors", validation.Count(results, validation.Error)),
				)
			}

			commands, err := sess.Plan()
			if err != nil {
				return err
			}
			var pending []string
			for _, command := range commands {
				if !command.Empty {
					pending = append(pending, command.Path)
				}
			}
			if len(pending) == 0 {
				if opts.jsonOut {
					return writeJSON(cmd, applyOutput{SessionID: sess.ID(), Validation: nonNilResults(results), Results: []mkvpropedit.Result{}})
				}
				fmt.Fprintln(out, "Nothing to apply")
				return nil
			}

			if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg, pending)); len(failed) > 0 {
				for _, check := range failed {
					fmt.Fprintln(out, renderStatusLine(check.Name, statusError, check.Detail, colorize))
				}
				return fmt.Errorf("preflight failed: %s", textutil.Pluralize(len(failed), "problem"))
			}

			lock, err := session.AcquireLock(cfg.Session.LockPath)
			if err != nil {
				return err
			}
			defer lock.Release()

			runner := mkvpropedit.NewRunner(cfg.Tools.MKVPropEdit, ctx.log())
			runResults, runErr := sess.Execute(cmd.Context(), runner)

			if opts.jsonOut {
				if err := writeJSON(cmd, applyOutput{
					SessionID:  sess.ID(),
					Validation: nonNilResults(results),
					Results:    runResults,
				}); err != nil {
					return err
				}
				return runErr
			}

			for _, result := range runResults {
				message := result.Status.String()
				if result.Output != "" && result.Status != mkvpropedit.StatusSuccess {
					message = fmt.Sprintf("%s: %s", message, textutil.Truncate(result.Output, 120))
				}
				fmt.Fprintln(out, renderStatusLine(fileLabel(result.Path), statusKindFromResult(result.Status), message, colorize))
			}
			if runErr != nil {
				return fmt.Errorf("apply finished with failures: %w", runErr)
			}
			fmt.Fprintf(out, "Updated %s\n", textutil.Pluralize(len(runResults), "file"))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "Apply even when validation reports errors")
	return cmd
}
