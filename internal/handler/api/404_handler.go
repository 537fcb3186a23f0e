package api

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, Envelope{
			Code:    http.StatusNotFound,
			Message: "This endpoint does not exist",
		})
	}
}
