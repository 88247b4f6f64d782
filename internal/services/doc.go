// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names and the source path for
//     logging.
//   - Structured error markers plus the Wrap helper that keep failures
//     classifiable (validation vs external tool) all the way to the exit code.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
