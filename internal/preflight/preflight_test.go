package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutter/internal/config"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_Missing(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "missing"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected missing directory failure, got %+v", result)
	}
}

func TestCheckDirectoryAccess_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := CheckDirectoryAccess("test", path)
	if result.Passed || !strings.Contains(result.Detail, "is not a directory") {
		t.Fatalf("expected not-a-directory failure, got %+v", result)
	}
}

func TestCheckDirectoryAccess_ReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	result := CheckDirectoryAccess("test", dir)
	if result.Passed || !strings.Contains(result.Detail, "insufficient permissions") {
		t.Fatalf("expected permission failure, got %+v", result)
	}
}

func TestCheckBinaries(t *testing.T) {
	present := writeStub(t, t.TempDir(), "present")
	results := CheckBinaries([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary", Description: "needed"},
		{Name: "Blank", Command: " ", Optional: true},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed || results[0].Detail != present {
		t.Fatalf("expected resolved stub, got %+v", results[0])
	}
	if results[1].Passed || !strings.Contains(results[1].Detail, "clearly-not-present-binary") {
		t.Fatalf("expected missing binary failure, got %+v", results[1])
	}
	if results[2].Passed || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured failure, got %+v", results[2])
	}

	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Missing" {
		t.Fatalf("optional failures must not count, got %+v", failed)
	}
}

func TestRunAllSkipsUnsetDirectories(t *testing.T) {
	binDir := t.TempDir()
	cfg := config.Default()
	cfg.Encoding.FFmpegBinary = writeStub(t, binDir, "ffmpeg")
	cfg.Encoding.FFprobeBinary = writeStub(t, binDir, "ffprobe")
	cfg.Transcription.UVXBinary = writeStub(t, binDir, "uvx")
	cfg.Paths.LogDir = t.TempDir()
	cfg.Cache.Enabled = false

	results := RunAll(&cfg)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		if !r.Passed {
			t.Fatalf("expected %s to pass, got %s", r.Name, r.Detail)
		}
	}
	if got := strings.Join(names, ","); got != "FFmpeg,FFprobe,uvx,Log directory" {
		t.Fatalf("unexpected checks: %s", got)
	}
	if len(Failed(results)) != 0 {
		t.Fatal("expected no failures")
	}
}

func TestRunAllIncludesCacheDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Path = filepath.Join(t.TempDir(), "transcripts.db")

	var found bool
	for _, r := range RunAll(&cfg) {
		if r.Name == "Cache directory" {
			found = true
			if !r.Passed {
				t.Fatalf("expected cache directory to pass, got %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected cache directory check")
	}
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
