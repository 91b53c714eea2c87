// Package main hosts the mkvbatch CLI entrypoint and command graph.
//
// The Cobra-based command tree scans Matroska files, builds a batch session
// from them, applies the requested edits, and either prints the planned
// mkvpropedit invocations or runs them. Configuration resolution and logging
// setup live in commandContext so subcommands only deal with presentation.
//
// Keep this package lean: new behavior belongs in the internal packages
// first and is surfaced here through commands or flags.
package main
