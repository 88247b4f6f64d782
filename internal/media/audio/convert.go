package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cutter/internal/logging"
	"cutter/internal/media/ffprobe"
	"cutter/internal/services"
)

// Speech recognition input format: mono 16 kHz signed 16-bit PCM.
const (
	SampleRate  = "16000"
	Channels    = "1"
	SampleCodec = "pcm_s16le"
)

// DefaultFFmpeg is used when no ffmpeg path is configured.
const DefaultFFmpeg = "ffmpeg"

// ErrNoAudio reports a source without any audio stream.
var ErrNoAudio = errors.New("no audio stream found")

// StreamInspector exposes the stream layout of a media file.
type StreamInspector interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	if output, err := services.RunCommand(ctx, name, args...); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Converter extracts a speech-ready WAV track from any media file.
type Converter struct {
	ffmpegBinary string
	inspector    StreamInspector
	language     string
	run          CommandRunner
	logger       *slog.Logger
}

// NewConverter builds a converter. When inspector is nil the first audio
// stream is used without ranking.
func NewConverter(ffmpegBinary string, inspector StreamInspector, preferredLanguage string, logger *slog.Logger) *Converter {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = DefaultFFmpeg
	}
	return &Converter{
		ffmpegBinary: ffmpegBinary,
		inspector:    inspector,
		language:     preferredLanguage,
		run:          runCommand,
		logger:       logging.NewComponentLogger(logger, "audio"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Converter) WithCommandRunner(run CommandRunner) *Converter {
	if run != nil {
		c.run = run
	}
	return c
}

// ConvertToWAV writes the selected audio stream of source to dest as a mono
// 16 kHz WAV file.
func (c *Converter) ConvertToWAV(ctx context.Context, source, dest string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return errors.New("convert audio: source and destination required")
	}

	streamMap := "0:a:0"
	if c.inspector != nil {
		probe, err := c.inspector.Inspect(ctx, source)
		if err != nil {
			return fmt.Errorf("convert audio: %w", err)
		}
		selection := Select(probe.Streams, c.language)
		if !selection.Found() {
			return fmt.Errorf("convert audio: %s: %w", source, ErrNoAudio)
		}
		streamMap = fmt.Sprintf("0:%d", selection.PrimaryIndex)
		c.logger.Debug("audio stream selected",
			logging.Int("stream_index", selection.PrimaryIndex),
			logging.String("stream", selection.PrimaryLabel()),
			logging.Int("candidates", selection.Candidates),
		)
	}

	if err := c.run(ctx, c.ffmpegBinary, buildExtractArgs(source, streamMap, dest)...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}

func buildExtractArgs(source, streamMap, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", streamMap,
		"-vn",
		"-sn",
		"-dn",
		"-ac", Channels,
		"-ar", SampleRate,
		"-c:a", SampleCodec,
		dest,
	}
}
