// Package segment slices a media timeline into contiguous clips at cut points.
//
// Split is a pure function: it sorts a copy of the cut points, applies the
// out-of-range Policy, and returns segments that tile [0, duration) exactly.
// It performs no I/O so callers can unit-test clip planning without touching
// ffmpeg or the transcription backend.
package segment
