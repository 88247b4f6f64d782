package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cutter/internal/media/clip"
	"cutter/internal/pipeline"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan <video>",
		Short: "Show where a video would be split without writing clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				result, err := runner.Plan(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					out := newRunOutput(result, runner.Keyword())
					ext := filepath.Ext(result.Source)
					for i := range out.Segments {
						out.Segments[i].Output = filepath.Base(clip.OutputPath("", out.Segments[i].Index, ext))
					}
					return writeJSON(cmd, out)
				}
				printPlan(cmd.OutOrStdout(), result, runner.Keyword())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func printPlan(out io.Writer, result *pipeline.Result, keyword string) {
	fmt.Fprintf(out, "Source:     %s\n", result.Source)
	fmt.Fprintf(out, "Keyword:    %q\n", keyword)
	fmt.Fprintf(out, "Transcript: %d segment(s), speech ends at %ss%s\n",
		len(result.Transcript.Segments), formatSeconds(result.Transcript.End()), cachedSuffix(result.Cached))
	fmt.Fprintf(out, "Duration:   %ss\n", formatSeconds(result.Duration))
	fmt.Fprintf(out, "Cut points: %s\n", formatCutPoints(result.CutPoints))

	ext := filepath.Ext(result.Source)
	rows := make([][]string, 0, len(result.Segments))
	for idx, seg := range result.Segments {
		name := filepath.Base(clip.OutputPath("", idx, ext))
		if seg.Empty() {
			name = "(skipped)"
		}
		rows = append(rows, []string{
			strconv.Itoa(idx),
			formatSeconds(seg.Start),
			formatSeconds(seg.End),
			formatSeconds(seg.Duration()),
			name,
		})
	}
	fmt.Fprintln(out, renderTable([]tableColumn{
		{Header: "#", Align: alignRight},
		{Header: "Start", Align: alignRight},
		{Header: "End", Align: alignRight},
		{Header: "Length", Align: alignRight},
		{Header: "Output"},
	}, rows))
}

func cachedSuffix(cached bool) string {
	if cached {
		return " (cached)"
	}
	return ""
}
