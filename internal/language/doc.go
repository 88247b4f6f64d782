// Package language normalizes the language codes found in stream tags,
// configuration, and WhisperX arguments to ISO 639-1.
package language
