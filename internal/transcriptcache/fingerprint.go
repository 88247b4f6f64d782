package transcriptcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"cutter/internal/language"
)

// sampleSize bounds how much of each end of a file is hashed.
const sampleSize = 4 << 20

// Key identifies a cached transcript. The same media transcribed with a
// different model or language hint is a distinct entry.
type Key struct {
	Fingerprint string
	Model       string
	Language    string
}

// KeyFor fingerprints path and pairs it with the transcription settings.
// The language is reduced to its ISO 639-1 code, the form the transcriber
// receives, so "English" and "en" share an entry.
func KeyFor(path, model, lang string) (Key, error) {
	fp, err := Fingerprint(path)
	if err != nil {
		return Key{}, err
	}
	return Key{
		Fingerprint: fp,
		Model:       strings.TrimSpace(model),
		Language:    language.ToISO2(lang),
	}, nil
}

// Fingerprint hashes the file size with its first and last 4 MiB. Renaming
// or moving a file keeps its fingerprint; editing it does not.
func Fingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("fingerprint stat: %w", err)
	}
	size := info.Size()

	hash := sha256.New()
	var sizeBuf [8]byte
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(size))
	hash.Write(sizeBuf[:])

	if _, err := io.CopyN(hash, file, min(size, sampleSize)); err != nil {
		return "", fmt.Errorf("fingerprint head: %w", err)
	}
	if size > sampleSize {
		tailStart := max(size-sampleSize, sampleSize)
		if _, err := file.Seek(tailStart, io.SeekStart); err != nil {
			return "", fmt.Errorf("fingerprint seek: %w", err)
		}
		if _, err := io.CopyN(hash, file, size-tailStart); err != nil {
			return "", fmt.Errorf("fingerprint tail: %w", err)
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
