package pipeline

import (
	"context"

	"cutter/internal/segment"
	"cutter/internal/transcript"
	"cutter/internal/transcriptcache"
)

// Transcriber turns a speech-ready WAV file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error)
}

// AudioConverter normalizes any media container to a mono PCM WAV file.
type AudioConverter interface {
	ConvertToWAV(ctx context.Context, source, dest string) error
}

// DurationProber reports the playable length of a media file in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// SegmentWriter writes one time range of source to dest.
type SegmentWriter interface {
	WriteSegment(ctx context.Context, source string, seg segment.Segment, dest string) error
}

// TranscriptCache stores transcripts across runs.
type TranscriptCache interface {
	Lookup(ctx context.Context, key transcriptcache.Key) (transcript.Transcript, bool, error)
	Store(ctx context.Context, key transcriptcache.Key, sourcePath string, tr transcript.Transcript) error
}
