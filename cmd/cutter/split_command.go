package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"cutter/internal/pipeline"
	"cutter/internal/segment"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "split <video>",
		Short: "Transcribe a video and split it wherever the keyword is spoken",
		Long: "Transcribe the video, find every segment containing the cut keyword and write\n" +
			"one numbered clip per section (0.mp4, 1.mp4, ...). Without any cut the source\n" +
			"is copied unchanged as 0<ext>.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				result, err := runner.Run(cmd.Context(), args[0], ctx.outputDir(outputDir))
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, newRunOutput(result, runner.Keyword()))
				}
				printRunSummary(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the clips (default: the video's directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run result as JSON")
	return cmd
}

func newCutCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var cuts []float64
	var strict bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cut <video> --at SECONDS[,SECONDS...]",
		Short: "Split a video at explicit timestamps without transcribing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := segment.Truncate
			if strict {
				policy = segment.Strict
			}
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				result, err := runner.CutAt(cmd.Context(), args[0], ctx.outputDir(outputDir), cuts, policy)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, newRunOutput(result, ""))
				}
				printRunSummary(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().Float64SliceVar(&cuts, "at", nil, "Cut points in seconds, comma separated")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a cut point lies beyond the end of the video")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the clips (default: the video's directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run result as JSON")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

type runOutput struct {
	RunID     string          `json:"run_id"`
	Source    string          `json:"source"`
	OutputDir string          `json:"output_dir,omitempty"`
	Keyword   string          `json:"keyword,omitempty"`
	Cached    bool            `json:"cached_transcript"`
	Duration  float64         `json:"duration,omitempty"`
	CutPoints []float64       `json:"cut_points"`
	Segments  []segmentOutput `json:"segments"`
}

type segmentOutput struct {
	Index    int     `json:"index"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Output   string  `json:"output,omitempty"`
	Skipped  bool    `json:"skipped,omitempty"`
}

func newRunOutput(result *pipeline.Result, keyword string) runOutput {
	out := runOutput{
		RunID:     result.RunID,
		Source:    result.Source,
		OutputDir: result.OutputDir,
		Keyword:   keyword,
		Cached:    result.Cached,
		Duration:  result.Duration,
		CutPoints: result.CutPoints,
		Segments:  make([]segmentOutput, 0, len(result.Segments)),
	}
	if out.CutPoints == nil {
		out.CutPoints = []float64{}
	}
	skipped := make(map[int]bool, len(result.Skipped))
	for _, idx := range result.Skipped {
		skipped[idx] = true
	}
	written := 0
	for idx, seg := range result.Segments {
		entry := segmentOutput{Index: idx, Start: seg.Start, End: seg.End, Duration: seg.Duration(), Skipped: skipped[idx]}
		if !entry.Skipped && written < len(result.Outputs) {
			entry.Output = result.Outputs[written]
			written++
		}
		out.Segments = append(out.Segments, entry)
	}
	return out
}

func printRunSummary(out io.Writer, result *pipeline.Result) {
	if len(result.Segments) == 0 {
		fmt.Fprintf(out, "No cut points found; copied source to %s\n", firstOrEmpty(result.Outputs))
		return
	}
	fmt.Fprintf(out, "Cut points: %s\n", formatCutPoints(result.CutPoints))
	fmt.Fprintf(out, "Wrote %d clip(s) to %s\n", len(result.Outputs), result.OutputDir)
	for _, path := range result.Outputs {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(path))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d zero-length segment(s): %v\n", len(result.Skipped), result.Skipped)
	}
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
