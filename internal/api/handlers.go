package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/processing"
)

const (
	FormatGrouped = "grouped"
	FormatList    = "list"
)

// Analyzer is satisfied by *processing.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, phrase string) ([]models.AnalyzedPost, error)
}

type analysisParams struct {
	QueryPhrase string `validate:"required"`
	Format      string `validate:"omitempty,oneof=grouped list"`
}

type Handler struct {
	analyzer Analyzer
	// nil means the scorer has no remote dependency
	scorerHealthy *atomic.Bool
	validate      *validator.Validate
}

func NewHandler(analyzer Analyzer, scorerHealthy *atomic.Bool) *Handler {
	return &Handler{
		analyzer:      analyzer,
		scorerHealthy: scorerHealthy,
		validate:      validator.New(),
	}
}

// Analysis serves GET /api/Analysis?query_phrase=...&format=grouped|list.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	params := analysisParams{
		QueryPhrase: strings.TrimSpace(r.URL.Query().Get("query_phrase")),
		Format:      strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))),
	}
	if err := h.validate.Struct(params); err != nil {
		msg := MSG_INVALID_PHRASE
		if params.QueryPhrase != "" {
			msg = MSG_INVALID_FORMAT
		}
		Message(w, http.StatusBadRequest, msg)
		return
	}

	posts, err := h.analyzer.Analyze(r.Context(), params.QueryPhrase)
	if err != nil {
		status, msg := StatusFor(err)
		slog.Error("[API] Analysis failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("status", status),
			slog.String("error", err.Error()))
		Message(w, status, msg)
		return
	}

	if params.Format == FormatList {
		JSON(w, http.StatusOK, posts)
		return
	}
	JSON(w, http.StatusOK, processing.GroupBySentiment(posts))
}

// Ready reports 503 while the sentiment backend fails its health check.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.scorerHealthy != nil && !h.scorerHealthy.Load() {
		JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
