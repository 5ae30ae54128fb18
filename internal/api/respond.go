package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/processing"
)

const (
	MSG_INVALID_PHRASE = "Query phrase invalid."
	MSG_INVALID_FORMAT = "Format invalid."
)

// ErrorBody is the body of every non-2xx response from /api.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes v as application/json with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[API] Failed to encode response", slog.String("error", err.Error()))
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Message: msg})
}

// StatusFor maps an analysis error to the response status and message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, processing.ErrEmptyPhrase):
		return http.StatusBadRequest, MSG_INVALID_PHRASE
	case errors.Is(err, clients.ErrTwitterTimeout):
		return http.StatusGatewayTimeout, "Search timed out."
	case errors.Is(err, clients.ErrTwitterUnauthorized):
		return http.StatusBadGateway, "Search credentials were rejected."
	case errors.Is(err, clients.ErrTwitterRateLimited):
		return http.StatusBadGateway, "Search rate limit exceeded."
	case errors.Is(err, clients.ErrTwitterUnavailable):
		return http.StatusBadGateway, "Search service unavailable."
	case errors.Is(err, clients.ErrTwitterUnexpected):
		return http.StatusBadGateway, "Unexpected response from search service."
	default:
		return http.StatusInternalServerError, "Sentiment analysis failed."
	}
}
