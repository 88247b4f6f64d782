package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"cutter/internal/logging"
	"cutter/internal/media/ffprobe"
	"cutter/internal/segment"
	"cutter/internal/services"
)

// Options configures clip encoding.
type Options struct {
	FFmpegBinary string
	VideoCodec   string
	AudioCodec   string
	Preset       string
	CRF          int
	StreamCopy   bool
}

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

// Writer trims segments out of a source file.
type Writer struct {
	opts      Options
	inspector StreamInspector
	run       CommandRunner
	logger    *slog.Logger

	mu       sync.Mutex
	hasVideo map[string]bool
	copyWarn sync.Once
}

// NewWriter builds a Writer. A nil inspector treats every source as video.
func NewWriter(opts Options, inspector StreamInspector, logger *slog.Logger) *Writer {
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	return &Writer{
		opts:      opts,
		inspector: inspector,
		run:       runCommand,
		logger:    logging.NewComponentLogger(logger, "clip"),
		hasVideo:  make(map[string]bool),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (w *Writer) WithCommandRunner(run CommandRunner) *Writer {
	if run != nil {
		w.run = run
	}
	return w
}

// OutputPath returns the clip path for the segment at index.
func OutputPath(dir string, index int, ext string) string {
	return filepath.Join(dir, strconv.Itoa(index)+ext)
}

// WriteSegment writes seg of source to dest, overwriting dest.
func (w *Writer) WriteSegment(ctx context.Context, source string, seg segment.Segment, dest string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return errors.New("write segment: source and destination required")
	}
	if seg.Empty() {
		return fmt.Errorf("write segment: %s has no duration", seg)
	}

	video, err := w.sourceHasVideo(ctx, source)
	if err != nil {
		return fmt.Errorf("write segment: %w", err)
	}
	if w.opts.StreamCopy {
		w.copyWarn.Do(func() {
			logging.WarnWithContext(w.logger, "stream copy cuts snap to keyframes", "stream_copy_inexact",
				logging.String("source", source),
				logging.String(logging.FieldErrorHint, "set encoding.stream_copy = false for exact cut points"),
				logging.String(logging.FieldImpact, "clips may overlap or leave gaps at cut points"),
			)
		})
	}

	args := w.buildArgs(source, seg, dest, video)
	w.logger.Debug("ffmpeg clip command",
		logging.String("segment", seg.String()),
		logging.String("dest", dest),
		logging.Bool("video", video),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := w.run(ctx, w.opts.FFmpegBinary, args...); err != nil {
		return fmt.Errorf("ffmpeg clip %s: %w", seg, err)
	}
	return nil
}

func (w *Writer) sourceHasVideo(ctx context.Context, source string) (bool, error) {
	if w.inspector == nil {
		return true, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if video, ok := w.hasVideo[source]; ok {
		return video, nil
	}
	probe, err := w.inspector.Inspect(ctx, source)
	if err != nil {
		return false, err
	}
	video := probe.HasVideo()
	w.hasVideo[source] = video
	w.logger.Debug("clip source inspected",
		logging.String("source", source),
		logging.Int("video_streams", probe.VideoStreamCount()),
		logging.Int("audio_streams", probe.AudioStreamCount()),
		logging.Int64("size_bytes", probe.SizeBytes()),
		logging.Int64("bit_rate", probe.BitRate()),
		logging.Bool("video", video),
	)
	return video, nil
}

func (w *Writer) buildArgs(source string, seg segment.Segment, dest string, video bool) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatTimestamp(seg.Start),
		"-i", source,
		"-t", formatTimestamp(seg.Duration()),
	}
	if video {
		args = append(args, "-map", "0:v:0", "-map", "0:a?")
	} else {
		args = append(args, "-map", "0:a", "-vn")
	}
	args = append(args, "-sn", "-dn")

	switch {
	case w.opts.StreamCopy:
		args = append(args, "-c", "copy", "-avoid_negative_ts", "make_zero")
	case video:
		args = append(args, "-c:v", w.opts.VideoCodec)
		if w.opts.Preset != "" {
			args = append(args, "-preset", w.opts.Preset)
		}
		args = append(args, "-crf", strconv.Itoa(w.opts.CRF), "-c:a", w.opts.AudioCodec)
	default:
		args = append(args, "-c:a", w.opts.AudioCodec)
	}
	return append(args, dest)
}

func formatTimestamp(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
