package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cutter/internal/cutpoints"
	"cutter/internal/language"
	"cutter/internal/pipeline"
	"cutter/internal/transcript"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var asJSON, asText bool

	cmd := &cobra.Command{
		Use:   "transcribe <file>",
		Short: "Print the transcript of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				result, err := runner.Transcribe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, result.Transcript)
				}
				if asText {
					fmt.Fprintln(cmd.OutOrStdout(), result.Transcript.Text())
					return nil
				}
				printTranscript(cmd.OutOrStdout(), result.Transcript, cutpoints.NewMatcher(runner.Keyword()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the transcript as JSON")
	cmd.Flags().BoolVar(&asText, "text", false, "Print only the spoken text on one line")
	cmd.MarkFlagsMutuallyExclusive("json", "text")
	return cmd
}

func printTranscript(out io.Writer, tr transcript.Transcript, matcher *cutpoints.Matcher) {
	if len(tr.Segments) == 0 {
		fmt.Fprintln(out, "Transcript is empty")
		return
	}
	if code := language.ToISO2(tr.Language); code != "" {
		fmt.Fprintf(out, "Language: %s (%s)\n", language.DisplayName(code), code)
	}
	rows := make([][]string, 0, len(tr.Segments))
	for idx, seg := range tr.Segments {
		mark := ""
		if matcher.Match(seg.Text) {
			mark = "cut"
		}
		rows = append(rows, []string{
			strconv.Itoa(idx),
			formatSeconds(seg.Start),
			formatSeconds(seg.End),
			mark,
			strings.TrimSpace(seg.Text),
		})
	}
	fmt.Fprintln(out, renderTable([]tableColumn{
		{Header: "#", Align: alignRight},
		{Header: "Start", Align: alignRight},
		{Header: "End", Align: alignRight},
		{Header: "Cut"},
		{Header: "Text", Wrap: true},
	}, rows))
}
