package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/probe"
	"github.com/fhuszti/lsl-go/internal/transport"
	"github.com/fhuszti/lsl-go/internal/upload"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var category, entityID, contentType string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a recording (mp3, wav or m4a)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]
			name := filepath.Base(path)
			if err := upload.ValidateFile(name); err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open recording: %w", err)
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat recording: %w", err)
			}

			store, err := ctx.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			duration := probe.Prober{FFProbe: cfg.FFProbeBinary}.Duration(cmd.Context(), path)

			if category == "" {
				category = cfg.Category
			}
			if entityID == "" {
				entityID = cfg.EntityID
			}

			out := cmd.OutOrStdout()
			onProgress, finish := progressReporter(out, info.Size())
			res, err := upload.NewOrchestrator(client).Upload(cmd.Context(), upload.Input{
				Request: upload.Request{
					Category:    category,
					EntityID:    entityID,
					Filename:    name,
					ContentType: format.ContentTypeFor(name, contentType),
				},
				File:       upload.File{Name: name, Size: info.Size(), Body: f},
				OnProgress: onProgress,
			})
			finish()
			if err != nil {
				return err
			}

			file := upload.File{Name: name, Size: info.Size()}
			rec := upload.NewRecord(res, file, duration, time.Now())
			if err := store.Save(cmd.Context(), rec); err != nil {
				return fmt.Errorf("save upload record: %w", err)
			}

			fmt.Fprintf(out, "Uploaded %s (%s, %s)\n", name, format.Bytes(info.Size()), format.Duration(duration))
			fmt.Fprintf(out, "  object:  %s\n", rec.ObjectKey)
			fmt.Fprintf(out, "  asset:   %s\n", rec.AssetURL)
			fmt.Fprintf(out, "  task:    %s\n", rec.TaskID)
			fmt.Fprintf(out, "  summary: %s\n", rec.SummaryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Asset category (default from LSL_CATEGORY)")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "Owning entity id (default from LSL_ENTITY_ID)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Override the content type guessed from the extension")
	return cmd
}

// progressReporter draws a bar on terminals and stays silent otherwise.
func progressReporter(out io.Writer, size int64) (transport.ProgressFunc, func()) {
	if !isTerminal(out) {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(fmt.Sprintf("uploading %s", format.Bytes(size))),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	onProgress := func(percent int) { _ = bar.Set(percent) }
	finish := func() { _ = bar.Finish() }
	return onProgress, finish
}
