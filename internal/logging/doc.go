// Package logging assembles the slog loggers used by the cutter CLI.
//
// It owns the console and JSON handlers and the level and output plumbing.
// Context helpers tag log lines with the run identifier, pipeline stage, and
// source file carried on a context.Context, and NewNop serves tests and
// wiring code that must not fail.
package logging
