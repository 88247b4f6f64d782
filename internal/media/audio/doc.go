// Package audio prepares speech recognition input from media files.
//
// Select ranks the audio streams reported by ffprobe and picks the one most
// likely to carry the main spoken track: a language match first, then main
// programme audio over commentary and described audio, then the default
// disposition and channel count. Converter extracts the selected stream as a
// mono 16 kHz PCM WAV file with ffmpeg.
package audio
