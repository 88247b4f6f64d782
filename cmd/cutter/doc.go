// Package main hosts the cutter CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, builds the logger and the
// external-tool collaborators (ffprobe, ffmpeg, WhisperX) and hands them to the
// pipeline runner. Subcommands cover the full split, explicit cuts, dry-run
// planning, transcription, preflight checks, configuration scaffolding and
// transcript cache maintenance.
//
// Keep this package lean: behaviour belongs in internal packages and is only
// surfaced here through commands and flags.
package main
