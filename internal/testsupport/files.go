package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cutter/internal/transcript"
)

// WriteFile fills path with size bytes of a position-dependent pattern, so
// files of different sizes never share a head or tail. A size <= 0 writes a
// single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()
	WriteSeededFile(t, path, size, 0x42)
}

// WriteSeededFile is WriteFile with an explicit pattern seed; equal sizes
// with different seeds produce different content.
func WriteSeededFile(t testing.TB, path string, size int64, seed byte) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	var offset int64
	for offset < size {
		n := min(int64(chunkSize), size-offset)
		for i := range n {
			buf[i] = seed ^ byte((offset+i)%251)
		}
		if _, err := f.Write(buf[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		offset += n
	}
}

// WriteWhisperXJSON writes segments in the layout WhisperX emits with
// --output_format json.
func WriteWhisperXJSON(t testing.TB, path, language string, segments []transcript.Segment) {
	t.Helper()

	data, err := json.Marshal(transcript.Transcript{Language: language, Segments: segments})
	if err != nil {
		t.Fatalf("marshal whisperx payload: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
