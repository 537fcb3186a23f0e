package main

import (
	"fmt"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			recs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No uploads yet.")
				return nil
			}
			if limit > 0 && len(recs) > limit {
				recs = recs[:limit]
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Uploaded", "File", "Size", "Duration", "Task", "Summary"},
				historyRows(recs),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", history.MaxRecords, "Maximum number of uploads to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every recorded upload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Upload history cleared.")
			return nil
		},
	})

	return cmd
}

func historyRows(recs []history.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			format.DateTime(r.UploadedAt),
			r.FileName,
			format.Bytes(r.FileSize),
			format.Duration(r.DurationSec),
			r.TaskID,
			r.SummaryID,
		})
	}
	return rows
}
