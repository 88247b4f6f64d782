package whisperx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cutter/internal/language"
	"cutter/internal/logging"
	"cutter/internal/services"
	"cutter/internal/transcript"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "whisperx"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) *Service {
	s.commandRunner = runner
	return s
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Language returns the ISO 639-1 language hint, or "" for auto-detection.
func (s *Service) Language() string {
	return language.ToISO2(s.cfg.Language)
}

func (s *Service) uvx() string {
	if s.cfg.UVXBinary != "" {
		return s.cfg.UVXBinary
	}
	return UVXCommand
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := services.Command(ctx, name, args...)

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := services.CombinedOutput(ctx, cmd); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe runs WhisperX on a WAV file and returns its segments. The JSON
// result is written beside the audio file.
func (s *Service) Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error) {
	if strings.TrimSpace(audioPath) == "" {
		return transcript.Transcript{}, errors.New("transcribe: audio path required")
	}
	outputDir := filepath.Dir(audioPath)

	started := time.Now()
	args := s.buildArgs(audioPath, outputDir)
	s.logger.Info("whisperx transcription started",
		logging.String("model", s.Model()),
		logging.String("language", s.Language()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
	)
	if err := s.run(ctx, s.uvx(), args...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisperx: %w", err)
	}

	jsonPath := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))+".json")
	result, err := LoadTranscript(jsonPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisperx: %w", err)
	}
	s.logger.Info("whisperx transcription completed",
		logging.Int("segments", len(result.Segments)),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--best_of", BestOf,
		"--temperature", Temperature,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang := s.Language(); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// whisperXWord may lack timings for tokens WhisperX could not align.
type whisperXWord struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type whisperXSegment struct {
	Text  string         `json:"text"`
	Start float64        `json:"start"`
	End   float64        `json:"end"`
	Words []whisperXWord `json:"words"`
}

type whisperXPayload struct {
	Language string            `json:"language"`
	Segments []whisperXSegment `json:"segments"`
}

// LoadTranscript loads segments from a WhisperX JSON file. Segment text is
// trimmed and unaligned words are dropped.
func LoadTranscript(jsonPath string) (transcript.Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript.Transcript{}, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript.Transcript{}, fmt.Errorf("parse whisperx json: %w", err)
	}

	result := transcript.Transcript{
		Language: payload.Language,
		Segments: make([]transcript.Segment, 0, len(payload.Segments)),
	}
	for _, seg := range payload.Segments {
		out := transcript.Segment{
			Text:  strings.TrimSpace(seg.Text),
			Start: seg.Start,
			End:   seg.End,
		}
		for _, word := range seg.Words {
			if word.Start == nil || word.End == nil {
				continue
			}
			out.Words = append(out.Words, transcript.Word{
				Text:  strings.TrimSpace(word.Word),
				Start: *word.Start,
				End:   *word.End,
			})
		}
		result.Segments = append(result.Segments, out)
	}
	return result, nil
}
