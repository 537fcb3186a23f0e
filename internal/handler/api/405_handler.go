package api

import (
	"net/http"
)

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, Envelope{
			Code:    http.StatusMethodNotAllowed,
			Message: "This method is not allowed",
		})
	}
}
