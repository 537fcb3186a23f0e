package api

import (
	"net/http"
	"strconv"

	"github.com/fhuszti/lsl-go/internal/logger"
	"github.com/fhuszti/lsl-go/internal/port"
	"github.com/fhuszti/lsl-go/internal/usecase/asset"
)

type ListAssetsRequest struct {
	Limit    int    `json:"limit" validate:"gte=1,lte=100"`
	Category string `json:"category" validate:"omitempty,max=64"`
	EntityID string `json:"entity_id" validate:"omitempty,max=128"`
}

func ListAssetsHandler(renderer port.HTTPRenderer, svc port.AssetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := ListAssetsRequest{
			Limit:    asset.DefaultListLimit,
			Category: q.Get("category"),
			EntityID: q.Get("entity_id"),
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "limit must be an integer", nil)
				return
			}
			req.Limit = limit
		}

		if rejectInvalid(w, r, req) {
			return
		}

		raw, etag, err := renderer.RenderListAssets(r.Context(), svc, port.ListAssetsInput(req))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list assets", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, max-age=30")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Info(r.Context(), "✅  Returning cached asset listing")
			return
		}

		RespondSuccessRaw(w, http.StatusOK, raw)
		logger.Info(r.Context(), "✅  Successfully listed assets")
	}
}
