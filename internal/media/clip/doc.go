// Package clip writes individual segments of a media file with ffmpeg.
//
// Writer re-encodes each segment with the configured codecs, or stream-copies
// when requested. Sources without a video stream are written audio-only.
// OutputPath names clips by zero-based segment index, keeping the source
// extension.
package clip
