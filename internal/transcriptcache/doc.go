// Package transcriptcache persists transcripts in SQLite so a file that was
// already transcribed with the same model and language hint skips speech
// recognition on later runs.
//
// Entries are keyed by a content fingerprint rather than the path, so moving
// or renaming a video still hits the cache.
package transcriptcache
