package api

import "net/http"

type HealthResponse struct {
	Status string `json:"status"`
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
