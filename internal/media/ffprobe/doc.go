// Package ffprobe runs ffprobe and decodes its JSON report.
//
// Inspect returns the streams and container format of one file. Prober binds
// the binary once and adds Duration, which rejects missing, NaN or
// non-positive lengths before they reach the segmenter.
package ffprobe
