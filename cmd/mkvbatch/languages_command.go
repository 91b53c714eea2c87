package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvbatch/internal/language"
)

type languageEntry struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ISO6392B string `json:"iso639_2b,omitempty"`
	ISO6392T string `json:"iso639_2t,omitempty"`
	ISO6391  string `json:"iso639_1,omitempty"`
	ISO6393  string `json:"iso639_3,omitempty"`
	Custom   bool   `json:"custom"`
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var filter string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages accepted by --set KIND:TRACK:language=VALUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries := languageEntries(languageTable(cfg).Options(), filter)
			if jsonOut {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No matching languages")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, entry.Code, entry.ISO6392T, entry.ISO6391, entry.ISO6393, yesNo(entry.Custom)})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Code", "639-2/T", "639-1", "639-3", "Custom"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only list languages whose name or codes contain this text")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func languageEntries(options []language.Option, filter string) []languageEntry {
	filter = strings.ToLower(strings.TrimSpace(filter))
	entries := make([]languageEntry, 0, len(options))
	for _, opt := range options {
		entry := languageEntry{
			Name:     opt.Name,
			Code:     opt.Code(),
			ISO6392B: opt.ISO6392B,
			ISO6392T: opt.ISO6392T,
			ISO6391:  opt.ISO6391,
			ISO6393:  opt.ISO6393,
			Custom:   opt.Custom != "",
		}
		if filter != "" && !entryMatches(entry, filter) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func entryMatches(entry languageEntry, filter string) bool {
	for _, value := range []string{entry.Name, entry.Code, entry.ISO6392T, entry.ISO6391, entry.ISO6393} {
		if strings.Contains(strings.ToLower(value), filter) {
			return true
		}
	}
	return false
}
