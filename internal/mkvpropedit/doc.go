// Package mkvpropedit compiles pending edits into mkvpropedit arguments and
// runs the tool.
//
// Builder output is a preview form: the input path and every string value
// are wrapped in double quotes with embedded quotes escaped. Argv converts it
// into the exact argument vector passed to the process. Track selectors use
// the 1-based Matroska track number within the kind, e.g. track:s17 for the
// subtitle slot at index 16.
package mkvpropedit
