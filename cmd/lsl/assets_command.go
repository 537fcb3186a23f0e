package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fhuszti/lsl-go/internal/format"
	"github.com/fhuszti/lsl-go/internal/transport"
	"github.com/spf13/cobra"
)

const pathAssets = "/assets"

type assetItem struct {
	ObjectKey    string  `json:"object_key"`
	Category     string  `json:"category"`
	EntityID     string  `json:"entity_id"`
	Filename     *string `json:"filename"`
	ContentType  *string `json:"content_type"`
	FileSize     *int64  `json:"file_size"`
	ETag         *string `json:"etag"`
	UploadStatus int     `json:"upload_status"`
	CreatedAt    string  `json:"created_at"`
	AssetURL     string  `json:"asset_url"`
}

type assetList struct {
	Items []assetItem `json:"items"`
}

var uploadStatusNames = map[int]string{0: "pending", 1: "verified", 2: "missing"}

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var category, entityID string

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List assets recorded by the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			query := map[string]string{"limit": strconv.Itoa(limit)}
			if category != "" {
				query["category"] = category
			}
			if entityID != "" {
				query["entity_id"] = entityID
			}

			var list assetList
			if err := client.RequestJSON(cmd.Context(), pathAssets, transport.RequestOptions{
				Method: http.MethodGet,
				Query:  query,
			}, &list); err != nil {
				return fmt.Errorf("list assets: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list.Items) == 0 {
				fmt.Fprintln(out, "No assets.")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Created", "Object key", "File", "Size", "Status"},
				assetRows(list.Items),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of assets (1-100)")
	cmd.Flags().StringVar(&category, "category", "", "Only assets of this category")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "Only assets of this entity")
	return cmd
}

func assetRows(items []assetItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		name, size := "--", "--"
		if it.Filename != nil {
			name = *it.Filename
		}
		if it.FileSize != nil {
			size = format.Bytes(*it.FileSize)
		}
		status, ok := uploadStatusNames[it.UploadStatus]
		if !ok {
			status = "unknown"
		}
		rows = append(rows, []string{format.DateTime(it.CreatedAt), it.ObjectKey, name, size, status})
	}
	return rows
}
