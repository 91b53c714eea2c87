package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/textutil"
	"mkvbatch/internal/trackconfig"
)

type scannedTrack struct {
	Kind          trackconfig.Kind `json:"kind"`
	Number        int              `json:"number"`
	Position      string           `json:"position,omitempty"`
	Language      string           `json:"language,omitempty"`
	Format        string           `json:"format,omitempty"`
	Title         string           `json:"title,omitempty"`
	ChannelLayout string           `json:"channel_layout,omitempty"`
	Default       bool             `json:"default"`
	Forced        bool             `json:"forced"`
}

type scannedFile struct {
	Path   string         `json:"path"`
	Title  string         `json:"title,omitempty"`
	Tracks []scannedTrack `json:"tracks"`
	Other  int            `json:"other_tracks"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Inspect files and list their editable tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := ctx.scanFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			summaries := make([]scannedFile, 0, len(files))
			for _, file := range files {
				summaries = append(summaries, summarizeFile(file))
			}
			if jsonOut {
				return writeJSON(cmd, summaries)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for i, summary := range summaries {
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderSectionHeader(summary.Path, colorize) {
					fmt.Fprintln(out, line)
				}
				if summary.Title != "" {
					fmt.Fprintf(out, "Title: %s\n", summary.Title)
				}
				if len(summary.Tracks) == 0 {
					fmt.Fprintln(out, "No editable tracks")
					continue
				}
				fmt.Fprint(out, renderTable(
					[]string{"Track", "Language", "Format", "Name", "Layout", "Default", "Forced"},
					trackRows(summary.Tracks),
					nil,
				))
				fmt.Fprintln(out)
				if summary.Other > 0 {
					fmt.Fprintf(out, "%s not shown\n", textutil.Pluralize(summary.Other, "non-editable track"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// summarizeFile lists the editable tracks of file grouped by kind, numbered
// the way --set addresses them.
func summarizeFile(file *scan.File) scannedFile {
	summary := scannedFile{Path: file.Path, Tracks: []scannedTrack{}}
	if general, ok := file.General(); ok {
		summary.Title = general.Title
	}
	for _, track := range file.Tracks {
		if track.Type != scan.General && !track.Type.Editable() {
			summary.Other++
		}
	}
	for _, kind := range trackconfig.Kinds {
		for i, track := range file.TracksOf(kind.ScanType()) {
			summary.Tracks = append(summary.Tracks, scannedTrack{
				Kind:          kind,
				Number:        i + 1,
				Position:      track.Position,
				Language:      track.Language,
				Format:        track.Format,
				Title:         track.Title,
				ChannelLayout: track.ChannelLayout,
				Default:       track.Default,
				Forced:        track.Forced,
			})
		}
	}
	return summary
}

func trackRows(tracks []scannedTrack) [][]string {
	rows := make([][]string, 0, len(tracks))
	for _, track := range tracks {
		rows = append(rows, []string{
			track.Kind.Prefix() + ":" + strconv.Itoa(track.Number),
			track.Language,
			track.Format,
			track.Title,
			track.ChannelLayout,
			yesNo(track.Default),
			yesNo(track.Forced),
		})
	}
	return rows
}
