package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutter/internal/config"
	"cutter/internal/pipeline"
	"cutter/internal/segment"
	"cutter/internal/testsupport"
	"cutter/internal/transcript"
)

type stubTranscriber struct{ tr transcript.Transcript }

func (s stubTranscriber) Transcribe(context.Context, string) (transcript.Transcript, error) {
	return s.tr, nil
}

type stubConverter struct{}

func (stubConverter) ConvertToWAV(_ context.Context, _, dest string) error {
	return os.WriteFile(dest, []byte("RIFF"), 0o644)
}

type stubProber struct{ duration float64 }

func (s stubProber) Duration(context.Context, string) (float64, error) {
	return s.duration, nil
}

type stubWriter struct{}

func (stubWriter) WriteSegment(_ context.Context, _ string, seg segment.Segment, dest string) error {
	return os.WriteFile(dest, []byte(seg.String()), 0o644)
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	transcript transcript.Transcript
	duration   float64
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "xdg-cache"))

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		duration:   10,
		transcript: transcript.Transcript{Language: "en", Segments: []transcript.Segment{
			{Text: "welcome back", Start: 0, End: 2},
			{Text: "okay, cut!", Start: 2, End: 4},
			{Text: "second take", Start: 4, End: 8},
		}},
	}
}

func (e *cliTestEnv) stubDependencies(*config.Config, *slog.Logger) (pipeline.Dependencies, func(), error) {
	return pipeline.Dependencies{
		Transcriber: stubTranscriber{tr: e.transcript},
		Converter:   stubConverter{},
		Prober:      stubProber{duration: e.duration},
		Writer:      stubWriter{},
	}, func() {}, nil
}

func (e *cliTestEnv) source(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.baseDir, "media", name)
	testsupport.WriteFile(t, path, 4096)
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := newCommandContext()
	ctx.logWriter = &stderr
	if env != nil {
		ctx.dependencies = env.stubDependencies
	}
	cmd := newRootCommandWith(ctx)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if env != nil {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
