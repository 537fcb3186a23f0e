package main

import (
	"errors"
	"fmt"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/fhuszti/lsl-go/internal/summary"
	"github.com/spf13/cobra"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <summaryId>",
		Short: "Show the conversation summary of an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rec, err := store.FindBySummaryID(cmd.Context(), args[0])
			switch {
			case errors.Is(err, history.ErrNotFound):
				fmt.Fprintf(out, "%s  (no local upload record)\n\n", args[0])
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "%s  %s, %s, uploaded %s\n\n", rec.SummaryID, rec.FileName, format.Duration(rec.DurationSec), format.DateTime(rec.UploadedAt))
			}

			lines := summary.Lines(args[0])
			rows := make([][]string, 0, len(lines))
			for _, l := range lines {
				rows = append(rows, []string{l.TimestampLabel, string(l.Speaker), l.Original, l.Optimized, l.Note})
			}
			fmt.Fprintln(out, renderTable([]string{"Time", "Speaker", "Original", "Optimized", "Note"}, rows, nil))
			return nil
		},
	}
}
