package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"cutter/internal/cutpoints"
	"cutter/internal/fileutil"
	"cutter/internal/logging"
	"cutter/internal/media/clip"
	"cutter/internal/segment"
	"cutter/internal/services"
	"cutter/internal/transcript"
	"cutter/internal/transcriptcache"
)

const (
	stageValidate   = "validate"
	stageTranscribe = "transcribe"
	stageExtract    = "extract"
	stageSplit      = "split"
	stageWrite      = "write"
)

// audioFileName is the converted speech track inside the scoped work directory.
const audioFileName = "audio.wav"

// Dependencies bundles the collaborators a Runner drives. Cache may be nil.
type Dependencies struct {
	Transcriber Transcriber
	Converter   AudioConverter
	Prober      DurationProber
	Writer      SegmentWriter
	Cache       TranscriptCache
}

// Options tunes a Runner.
type Options struct {
	// Keyword is the spoken cut marker; blank means cutpoints.DefaultKeyword.
	Keyword string
	// Model and Language identify transcription settings in cache keys.
	Model    string
	Language string
	// WorkDir hosts per-run temporary directories; blank uses the OS default.
	WorkDir string
}

// Result describes what a run produced.
type Result struct {
	RunID      string
	Source     string
	OutputDir  string
	Transcript transcript.Transcript
	Cached     bool
	CutPoints  []float64
	Duration   float64
	Segments   []segment.Segment
	// Outputs holds the written clip paths in segment order.
	Outputs []string
	// Skipped holds the indices of zero-length segments that were not written.
	Skipped []int
}

// Runner sequences transcription, cut-point extraction, splitting and clip output.
type Runner struct {
	deps     Dependencies
	opts     Options
	matcher  *cutpoints.Matcher
	logger   *slog.Logger
	newRunID func() string
}

// New builds a Runner. Every collaborator except the cache is required.
func New(deps Dependencies, opts Options, logger *slog.Logger) (*Runner, error) {
	var missing []string
	if deps.Transcriber == nil {
		missing = append(missing, "transcriber")
	}
	if deps.Converter == nil {
		missing = append(missing, "audio converter")
	}
	if deps.Prober == nil {
		missing = append(missing, "duration prober")
	}
	if deps.Writer == nil {
		missing = append(missing, "segment writer")
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrConfiguration, "", "build pipeline", "missing "+strings.Join(missing, ", "), nil)
	}
	return &Runner{
		deps:     deps,
		opts:     opts,
		matcher:  cutpoints.NewMatcher(opts.Keyword),
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		newRunID: uuid.NewString,
	}, nil
}

// Keyword returns the spoken marker the runner splits on.
func (r *Runner) Keyword() string {
	return r.matcher.Keyword()
}

// Run transcribes input, splits it wherever the keyword is spoken and writes
// the clips to outputDir (default: the input's directory).
func (r *Runner) Run(ctx context.Context, input, outputDir string) (*Result, error) {
	ctx, result, err := r.begin(ctx, input)
	if err != nil {
		return nil, err
	}
	if result.OutputDir, err = prepareOutputDir(result.Source, outputDir); err != nil {
		return nil, err
	}
	unlock, err := lockOutputDir(result.OutputDir, r.logger)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := r.loadTranscript(ctx, result); err != nil {
		return nil, err
	}
	r.extract(ctx, result)

	if len(result.CutPoints) == 0 {
		if err := r.copyWhole(ctx, result); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := r.split(ctx, result, result.CutPoints, segment.Truncate); err != nil {
		return nil, err
	}
	if err := r.writeSegments(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CutAt splits input at caller-supplied cut points without transcribing.
func (r *Runner) CutAt(ctx context.Context, input, outputDir string, cuts []float64, policy segment.Policy) (*Result, error) {
	ctx, result, err := r.begin(ctx, input)
	if err != nil {
		return nil, err
	}
	if result.OutputDir, err = prepareOutputDir(result.Source, outputDir); err != nil {
		return nil, err
	}
	unlock, err := lockOutputDir(result.OutputDir, r.logger)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result.CutPoints = append([]float64(nil), cuts...)
	if err := r.split(ctx, result, cuts, policy); err != nil {
		return nil, err
	}
	if err := r.writeSegments(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Plan reports the cut points and segments a Run would produce without
// writing any clip.
func (r *Runner) Plan(ctx context.Context, input string) (*Result, error) {
	ctx, result, err := r.begin(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := r.loadTranscript(ctx, result); err != nil {
		return nil, err
	}
	r.extract(ctx, result)
	if err := r.split(ctx, result, result.CutPoints, segment.Truncate); err != nil {
		return nil, err
	}
	return result, nil
}

// Transcribe returns the transcript of input, using the cache when available.
func (r *Runner) Transcribe(ctx context.Context, input string) (*Result, error) {
	ctx, result, err := r.begin(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := r.loadTranscript(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) begin(ctx context.Context, input string) (context.Context, *Result, error) {
	runID := r.newRunID()
	ctx = services.WithRunID(ctx, runID)
	source, err := resolveInput(input)
	if err != nil {
		return ctx, nil, err
	}
	ctx = services.WithSource(ctx, source)
	return ctx, &Result{RunID: runID, Source: source}, nil
}

func (r *Runner) loadTranscript(ctx context.Context, result *Result) error {
	ctx = services.WithStage(ctx, stageTranscribe)
	logger := logging.WithContext(ctx, r.logger)

	var key transcriptcache.Key
	if r.deps.Cache != nil {
		var err error
		key, err = transcriptcache.KeyFor(result.Source, r.opts.Model, r.opts.Language)
		if err != nil {
			return services.Wrap(services.ErrValidation, stageTranscribe, "fingerprint source", result.Source, err)
		}
		tr, ok, err := r.deps.Cache.Lookup(ctx, key)
		if err != nil {
			logging.WarnWithContext(logger, "transcript cache lookup failed", "transcript_cache_lookup_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "the file will be transcribed again"),
				logging.String(logging.FieldErrorHint, "run 'cutter cache clear' if the cache is corrupt"),
			)
		} else if ok {
			logger.Info("transcript loaded from cache", logging.Int("segments", len(tr.Segments)))
			result.Transcript = tr
			result.Cached = true
			return nil
		}
	}

	workDir, err := os.MkdirTemp(r.opts.WorkDir, "cutter-")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageTranscribe, "create work directory", r.opts.WorkDir, err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Debug("work directory cleanup failed", logging.String("dir", workDir), logging.Error(err))
		}
	}()

	audioPath := filepath.Join(workDir, audioFileName)
	started := time.Now()
	if err := r.deps.Converter.ConvertToWAV(ctx, result.Source, audioPath); err != nil {
		return toolError(ctx, stageTranscribe, "convert audio", result.Source, err)
	}
	logger.Debug("audio converted", logging.String("audio", audioPath), logging.Duration("elapsed", time.Since(started)))

	tr, err := r.deps.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return toolError(ctx, stageTranscribe, "transcribe audio", result.Source, err)
	}
	result.Transcript = tr
	logger.Info("transcription complete",
		logging.Int("segments", len(tr.Segments)),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)

	if r.deps.Cache != nil {
		if err := r.deps.Cache.Store(ctx, key, result.Source, tr); err != nil {
			logging.WarnWithContext(logger, "transcript cache store failed", "transcript_cache_store_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "the next run will transcribe this file again"),
			)
		}
	}
	return nil
}

func (r *Runner) extract(ctx context.Context, result *Result) {
	result.CutPoints = r.matcher.Extract(result.Transcript.Segments)
	logging.WithContext(services.WithStage(ctx, stageExtract), r.logger).Info("cut points extracted",
		logging.String("keyword", r.matcher.Keyword()),
		logging.Int("count", len(result.CutPoints)),
		logging.Any("cut_points", result.CutPoints),
	)
}

func (r *Runner) split(ctx context.Context, result *Result, cuts []float64, policy segment.Policy) error {
	ctx = services.WithStage(ctx, stageSplit)
	duration, err := r.deps.Prober.Duration(ctx, result.Source)
	if err != nil {
		return toolError(ctx, stageSplit, "probe duration", result.Source, err)
	}
	result.Duration = duration

	segments, err := segment.Split(duration, cuts, policy)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageSplit, "split timeline", result.Source, err)
	}
	if err := checkTiling(segments, duration); err != nil {
		return services.Wrap(services.ErrValidation, stageSplit, "split timeline", result.Source, err)
	}
	result.Segments = segments

	if dropped := countBeyond(cuts, duration); dropped > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "cut points beyond media duration dropped", "cut_points_truncated",
			logging.Int("dropped", dropped),
			logging.Seconds("duration", duration),
			logging.String(logging.FieldImpact, "the final clip runs to the end of the media"),
			logging.String(logging.FieldErrorHint, "check the transcript timings against the media length"),
		)
	}
	return nil
}

// checkTiling confirms segments cover [0, duration) end to end.
func checkTiling(segments []segment.Segment, duration float64) error {
	if segment.Tiles(segments, duration) {
		return nil
	}
	return fmt.Errorf("%d segment(s) do not tile [0, %gs)", len(segments), duration)
}

// toolError tags a collaborator failure. When the run was cancelled the
// context error joins the chain so the exit status reports the interrupt.
func toolError(ctx context.Context, stage, op, msg string, err error) error {
	wrapped := services.Wrap(services.ErrExternalTool, stage, op, msg, err)
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return errors.Join(ctxErr, wrapped)
	}
	return wrapped
}

func countBeyond(cuts []float64, duration float64) int {
	n := 0
	for _, cut := range cuts {
		if cut > duration {
			n++
		}
	}
	return n
}

func (r *Runner) writeSegments(ctx context.Context, result *Result) error {
	ctx = services.WithStage(ctx, stageWrite)
	logger := logging.WithContext(ctx, r.logger)
	ext := filepath.Ext(result.Source)

	for idx := range result.Segments {
		if dest := clip.OutputPath(result.OutputDir, idx, ext); fileutil.SameFile(dest, result.Source) {
			return services.Wrap(services.ErrValidation, stageWrite, "plan outputs",
				fmt.Sprintf("clip %d would overwrite the source; choose another output directory", idx), nil)
		}
	}

	for idx, seg := range result.Segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		if seg.Empty() {
			result.Skipped = append(result.Skipped, idx)
			logging.WarnWithContext(logger, "zero-length segment skipped", "zero_length_segment",
				logging.Int("index", idx),
				logging.String("segment", seg.String()),
				logging.String(logging.FieldImpact, fmt.Sprintf("clip %d is not written", idx)),
				logging.String(logging.FieldErrorHint, "the keyword was detected twice at the same timestamp"),
			)
			continue
		}
		dest := clip.OutputPath(result.OutputDir, idx, ext)
		started := time.Now()
		if err := r.deps.Writer.WriteSegment(ctx, result.Source, seg, dest); err != nil {
			return toolError(ctx, stageWrite, fmt.Sprintf("write clip %d", idx), dest, err)
		}
		result.Outputs = append(result.Outputs, dest)
		logger.Info("clip written",
			logging.Int("index", idx),
			logging.String("segment", seg.String()),
			logging.String("path", dest),
			logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
		)
	}
	return nil
}

func (r *Runner) copyWhole(ctx context.Context, result *Result) error {
	ctx = services.WithStage(ctx, stageWrite)
	logger := logging.WithContext(ctx, r.logger)
	dest := clip.OutputPath(result.OutputDir, 0, filepath.Ext(result.Source))

	if fileutil.SameFile(dest, result.Source) {
		logger.Info("no cut points found; source already in place", logging.String("path", dest))
		result.Outputs = []string{dest}
		return nil
	}
	size, err := fileutil.CopyVerified(ctx, result.Source, dest)
	if err != nil {
		return toolError(ctx, stageWrite, "copy source", dest, err)
	}
	result.Outputs = []string{dest}
	logger.Info("no cut points found; source copied", logging.String("path", dest), logging.Int64("bytes", size))
	return nil
}
