package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cutter/internal/config"
	"cutter/internal/logging"
	"cutter/internal/media/audio"
	"cutter/internal/media/clip"
	"cutter/internal/media/ffprobe"
	"cutter/internal/pipeline"
	"cutter/internal/services/whisperx"
	"cutter/internal/transcriptcache"
)

// dependencyFactory builds the pipeline collaborators. The returned closer
// releases anything the dependencies hold open.
type dependencyFactory func(cfg *config.Config, logger *slog.Logger) (pipeline.Dependencies, func(), error)

type commandContext struct {
	configFlag   string
	logLevelFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	// logWriter replaces the configured log outputs when set.
	logWriter    io.Writer
	dependencies dependencyFactory
}

func newCommandContext() *commandContext {
	return &commandContext{dependencies: defaultDependencies}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if c.logWriter != nil {
		return logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: c.logWriter,
		})
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// withRunner builds a pipeline runner for the loaded configuration, hands it
// to fn and releases the collaborators afterwards.
func (c *commandContext) withRunner(fn func(*pipeline.Runner) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	deps, closeDeps, err := c.dependencies(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDeps()

	runner, err := pipeline.New(deps, pipeline.Options{
		Keyword:  cfg.Transcription.Keyword,
		Model:    cfg.Transcription.WhisperXModel,
		Language: cfg.Transcription.Language,
		WorkDir:  cfg.Paths.WorkDir,
	}, logger)
	if err != nil {
		return err
	}
	return fn(runner)
}

func defaultDependencies(cfg *config.Config, logger *slog.Logger) (pipeline.Dependencies, func(), error) {
	prober := ffprobe.NewProber(cfg.FFprobeBinary())
	deps := pipeline.Dependencies{
		Transcriber: whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.WhisperXModel,
			Language:    cfg.Transcription.Language,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
			VADMethod:   cfg.Transcription.VADMethod,
			HFToken:     cfg.Transcription.HFToken,
			UVXBinary:   cfg.UVXBinary(),
		}, logger),
		Converter: audio.NewConverter(cfg.FFmpegBinary(), prober, cfg.Transcription.Language, logger),
		Prober:    prober,
		Writer: clip.NewWriter(clip.Options{
			FFmpegBinary: cfg.FFmpegBinary(),
			VideoCodec:   cfg.Encoding.VideoCodec,
			AudioCodec:   cfg.Encoding.AudioCodec,
			Preset:       cfg.Encoding.Preset,
			CRF:          cfg.Encoding.CRF,
			StreamCopy:   cfg.Encoding.StreamCopy,
		}, prober, logger),
	}

	closer := func() {}
	if cfg.Cache.Enabled {
		cache, err := transcriptcache.Open(cfg.Cache.Path, logger)
		if err != nil {
			logging.WarnWithContext(logger, "transcript cache unavailable", "transcript_cache_open_failed",
				logging.String("path", cfg.Cache.Path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "transcripts will not be reused across runs"),
				logging.String(logging.FieldErrorHint, "check cache.path permissions or set cache.enabled = false"),
			)
		} else {
			deps.Cache = cache
			closer = func() { _ = cache.Close() }
		}
	}
	return deps, closer, nil
}

// outputDir picks the --output-dir flag, then paths.output_dir, then the
// input's own directory (blank).
func (c *commandContext) outputDir(flagValue string) string {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return dir
	}
	if c.config != nil {
		return c.config.Paths.OutputDir
	}
	return ""
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
