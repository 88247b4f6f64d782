// Package pipeline sequences one cutter run over one input file.
//
// A run validates the input and output paths, locks the output directory,
// obtains a transcript (from the transcript cache or by converting the
// source to WAV and calling the transcriber), extracts the spoken cut points,
// splits the source timeline, and writes one numbered clip per segment. When
// no cut point is found the source is copied verbatim as clip 0.
//
// All media and speech work happens behind the small interfaces declared in
// this package, so the sequencing is testable without ffmpeg or WhisperX.
package pipeline
