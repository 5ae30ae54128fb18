// Package processing turns a search phrase into scored and grouped posts.
package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/query"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyPhrase  = errors.New("processing: empty query phrase")
	ErrInvalidQuery = errors.New("processing: invalid search query")
)

const DEFAULT_SEARCH_TIMEOUT = 10 * time.Second

// Searcher runs a raw search query. clients.TwitterClient satisfies it.
type Searcher interface {
	Search(ctx context.Context, rawQuery string) ([]models.TwitterStatus, error)
}

// Publisher receives a summary of every successful analysis.
type Publisher interface {
	PublishAnalysis(ctx context.Context, event models.AnalysisEvent) error
}

type AnalyzerOptions struct {
	Builder       query.Builder
	SearchTimeout time.Duration
	CleanText     bool
	// Workers above 1 score posts concurrently.
	Workers   int
	Backend   string
	Publisher Publisher
}

type Analyzer struct {
	searcher  Searcher
	scorer    sentiment.Scorer
	builder   query.Builder
	timeout   time.Duration
	cleanText bool
	workers   int
	backend   string
	publisher Publisher
}

func NewAnalyzer(searcher Searcher, scorer sentiment.Scorer, opts AnalyzerOptions) *Analyzer {
	if opts.Builder.Count == 0 {
		opts.Builder = query.DefaultBuilder()
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = DEFAULT_SEARCH_TIMEOUT
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Analyzer{
		searcher:  searcher,
		scorer:    scorer,
		builder:   opts.Builder,
		timeout:   opts.SearchTimeout,
		cleanText: opts.CleanText,
		workers:   opts.Workers,
		backend:   opts.Backend,
		publisher: opts.Publisher,
	}
}

// Analyze searches for phrase and returns every result scored, in the order
// the search returned them. Any search or scoring failure fails the whole
// call.
func (a *Analyzer) Analyze(ctx context.Context, phrase string) ([]models.AnalyzedPost, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, ErrEmptyPhrase
	}

	q := a.builder.Build(phrase)
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("[Analyzer] %w: %w", ErrInvalidQuery, err)
	}

	statuses, err := a.search(ctx, q.Encode())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	posts, err := a.scoreAll(ctx, statuses)
	if err != nil {
		slog.Error("[Analyzer] Scoring failed",
			slog.String("phrase", phrase),
			slog.String("error", err.Error()))
		return nil, err
	}
	monitoring.RecordScoring(a.backend, time.Since(start))

	counts := CountCategories(posts)
	monitoring.RecordCategories(counts)

	slog.Info("[Analyzer] Analysis complete",
		slog.String("phrase", phrase),
		slog.Int("posts", len(posts)),
		slog.Duration("scoring", time.Since(start)))

	a.publish(ctx, phrase, posts, counts)
	return posts, nil
}

func (a *Analyzer) search(ctx context.Context, rawQuery string) ([]models.TwitterStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	statuses, err := a.searcher.Search(ctx, rawQuery)
	if err != nil {
		kind := SearchErrorKind(err)
		monitoring.RecordSearch(time.Since(start), kind)
		slog.Error("[Analyzer] Search failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()))
		return nil, err
	}
	monitoring.RecordSearch(time.Since(start), "")
	return statuses, nil
}

func (a *Analyzer) scoreAll(ctx context.Context, statuses []models.TwitterStatus) ([]models.AnalyzedPost, error) {
	posts := make([]models.AnalyzedPost, len(statuses))

	if a.workers <= 1 {
		for i, status := range statuses {
			post, err := MapStatus(ctx, a.scorer, status, a.cleanText)
			if err != nil {
				return nil, err
			}
			posts[i] = post
		}
		return posts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, status := range statuses {
		g.Go(func() error {
			post, err := MapStatus(gctx, a.scorer, status, a.cleanText)
			if err != nil {
				return err
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (a *Analyzer) publish(ctx context.Context, phrase string, posts []models.AnalyzedPost, counts map[string]int) {
	if a.publisher == nil {
		return
	}

	var sum float64
	for _, post := range posts {
		sum += post.Polarity
	}
	mean := 0.0
	if len(posts) > 0 {
		mean = sum / float64(len(posts))
	}

	event := models.AnalysisEvent{
		EventID:      uuid.NewString(),
		QueryPhrase:  phrase,
		PostCount:    len(posts),
		Categories:   counts,
		MeanPolarity: mean,
		Backend:      a.backend,
		Timestamp:    time.Now().UTC(),
	}
	if err := a.publisher.PublishAnalysis(ctx, event); err != nil {
		slog.Warn("[Analyzer] Failed to publish analysis event",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()))
	}
}

// SearchErrorKind names the failure class of a search error for metrics and
// logs.
func SearchErrorKind(err error) string {
	switch {
	case errors.Is(err, clients.ErrTwitterUnauthorized):
		return "unauthorized"
	case errors.Is(err, clients.ErrTwitterRateLimited):
		return "rate_limited"
	case errors.Is(err, clients.ErrTwitterTimeout):
		return "timeout"
	case errors.Is(err, clients.ErrTwitterUnavailable):
		return "unavailable"
	default:
		return "unexpected"
	}
}
