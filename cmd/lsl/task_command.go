package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/fhuszti/lsl-go/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTaskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "task <taskId>",
		Short: "Show the analysis progress of an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := store.FindByTaskID(cmd.Context(), args[0])
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no upload with task id %q", args[0])
			}
			if err != nil {
				return err
			}

			status, err := ctx.statusSource().Status(cmd.Context(), rec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", rec.TaskID, rec.FileName)
			fmt.Fprintf(out, "uploaded %s, status %s\n\n", format.DateTime(rec.UploadedAt), status)
			renderTimeline(out, status)
			if status == pipeline.StatusCompleted {
				fmt.Fprintf(out, "\nsummary ready: lsl summary %s\n", rec.SummaryID)
			}
			return nil
		},
	}
}

func renderTimeline(out io.Writer, status pipeline.Status) {
	for _, step := range pipeline.Steps() {
		mark := "[ ]"
		switch {
		case step == status && status != pipeline.StatusCompleted:
			mark = "[>]"
		case status.Reached(step):
			mark = "[x]"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, step)
	}
}
