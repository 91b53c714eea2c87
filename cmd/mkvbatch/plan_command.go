package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvbatch/internal/mkvpropedit"
	"mkvbatch/internal/session"
	"mkvbatch/internal/validation"
)

type planOutput struct {
	SessionID  string              `json:"session_id"`
	Validation []validation.Result `json:"validation"`
	Commands   []session.Command   `json:"commands"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "plan FILE...",
		Short: "Show the mkvpropedit invocations an apply would run",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.buildSession(cmd, args, &opts)
			if err != nil {
				return err
			}
			results := sess.Validate()
			commands, err := sess.Plan()
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd, planOutput{
					SessionID:  sess.ID(),
					Validation: nonNilResults(results),
					Commands:   commands,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printValidation(out, results, colorize)
			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Commands", colorize) {
				fmt.Fprintln(out, line)
			}
			binary := ctx.configValue().Tools.MKVPropEdit
			for _, command := range commands {
				if command.Empty {
					fmt.Fprintln(out, renderStatusLine(fileLabel(command.Path), statusInfo, "no changes", colorize))
					continue
				}
				fmt.Fprintln(out, shellCommand(binary, mkvpropedit.Argv(command.Args)))
			}
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

func nonNilResults(results []validation.Result) []validation.Result {
	if results == nil {
		return []validation.Result{}
	}
	return results
}

// shellCommand renders argv as a POSIX shell command line that can be pasted
// as is.
func shellCommand(binary string, argv []string) string {
	words := make([]string, 0, len(argv)+1)
	words = append(words, shellQuote(binary))
	for _, arg := range argv {
		words = append(words, shellQuote(arg))
	}
	return strings.Join(words, " ")
}

// shellQuote single-quotes arg unless every byte is shell-inert.
func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.IndexFunc(arg, func(r rune) bool { return !shellSafe(r) }) < 0 {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func shellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_@%+=:,./-", r)
}
