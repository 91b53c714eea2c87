package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvbatch/internal/session"
	"mkvbatch/internal/textutil"
	"mkvbatch/internal/trackconfig"
	"mkvbatch/internal/validation"
)

// batchOptions are the flags shared by every command that builds a session.
type batchOptions struct {
	title     string
	sets      []string
	reference string
	jsonOut   bool
}

func (o *batchOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.title, "title", "", "Set the container title of every file")
	flags.StringArrayVar(&o.sets, "set", nil, "Edit a track property as KIND:TRACK:PROPERTY=VALUE (e.g. s:17:name=Signs)")
	flags.StringVar(&o.reference, "reference", "", "File whose track counts define the batch layout")
	flags.BoolVar(&o.jsonOut, "json", false, "Output as JSON")
}

// edits parses the requested changes in command line order, title first.
func (o *batchOptions) edits(cmd *cobra.Command) ([]session.Edit, error) {
	var edits []session.Edit
	if cmd.Flags().Changed("title") {
		edits = append(edits, session.Edit{Property: trackconfig.PropertyTitle, Value: o.title})
	}
	for _, spec := range o.sets {
		edit, err := session.ParseEdit(spec)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, nil
}

// buildSession scans paths, loads them into a new session, and applies the
// requested edits. The reference file is scanned along with the batch.
func (c *commandContext) buildSession(cmd *cobra.Command, paths []string, opts *batchOptions) (*session.Session, error) {
	edits, err := opts.edits(cmd)
	if err != nil {
		return nil, err
	}

	reference := strings.TrimSpace(opts.reference)
	if reference != "" {
		paths = append(paths, reference)
	}
	files, err := c.scanFiles(cmd.Context(), paths)
	if err != nil {
		return nil, err
	}

	sess, err := c.newSession()
	if err != nil {
		return nil, err
	}
	if reference != "" {
		sess.SetReference(reference)
	}
	if err := sess.Load(files...); err != nil {
		return nil, err
	}
	for _, edit := range edits {
		if err := sess.Apply(edit); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func validationRows(results []validation.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		track := ""
		if r.Index >= 0 {
			track = strconv.Itoa(r.Index + 1)
		}
		rows = append(rows, []string{r.Severity.String(), string(r.Check), r.Kind.String(), track, r.Message})
	}
	return rows
}

func validationSummary(results []validation.Result) string {
	if len(results) == 0 {
		return "no issues"
	}
	return fmt.Sprintf("%s, %s, %s",
		textutil.Pluralize(validation.Count(results, validation.Error), "error"),
		textutil.Pluralize(validation.Count(results, validation.Warning), "warning"),
		textutil.Pluralize(validation.Count(results, validation.Info), "notice"),
	)
}

func printValidation(out io.Writer, results []validation.Result, colorize bool) {
	for _, line := range renderSectionHeader("Validation", colorize) {
		fmt.Fprintln(out, line)
	}
	if len(results) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Severity", "Check", "Kind", "Track", "Message"},
			validationRows(results),
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		))
	}
	kind := statusOK
	if len(results) > 0 {
		kind = statusKindFromSeverity(highestSeverity(results))
	}
	fmt.Fprintln(out, renderStatusLine("Summary", kind, validationSummary(results), colorize))
}

func highestSeverity(results []validation.Result) validation.Severity {
	highest := validation.Off
	for _, r := range results {
		if r.Severity > highest {
			highest = r.Severity
		}
	}
	return highest
}
