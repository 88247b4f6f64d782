// Package whisperx runs WhisperX through uvx and decodes its JSON output into
// a transcript.
//
// Service satisfies the pipeline's transcriber contract: it writes the JSON
// result next to the input WAV file and returns the ordered segments with
// word timings. Model, language hint, CUDA and VAD settings come from Config.
package whisperx
