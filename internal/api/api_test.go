package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/processing"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	statuses []models.TwitterStatus
	err      error
	calls    int
}

func (f *fakeSearcher) Search(context.Context, string) ([]models.TwitterStatus, error) {
	f.calls++
	return f.statuses, f.err
}

func status(id, text string) models.TwitterStatus {
	return models.TwitterStatus{
		IDStr:    id,
		FullText: text,
		User:     &models.TwitterUser{ScreenName: "u" + id, Name: "User " + id},
	}
}

var fixedScores = sentiment.ScorerFunc(func(_ context.Context, text string) (float64, error) {
	switch text {
	case "great":
		return 0.8, nil
	case "bad":
		return -0.3, nil
	case "explode":
		return 0, sentiment.ErrScoring
	}
	return 0, nil
})

func newTestRouter(searcher *fakeSearcher, healthy *atomic.Bool) http.Handler {
	analyzer := processing.NewAnalyzer(searcher, fixedScores, processing.AnalyzerOptions{})
	return NewRouter(NewHandler(analyzer, healthy), nil)
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestAnalysis_MissingPhrase(t *testing.T) {
	searcher := &fakeSearcher{}
	router := newTestRouter(searcher, nil)

	for _, target := range []string{"/api/Analysis", "/api/Analysis?query_phrase=", "/api/Analysis?query_phrase=%20%20"} {
		rr := get(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.Equal(t, MSG_INVALID_PHRASE, decodeMessage(t, rr), target)
	}
	assert.Equal(t, 0, searcher.calls)
}

func TestAnalysis_InvalidFormat(t *testing.T) {
	searcher := &fakeSearcher{}
	rr := get(t, newTestRouter(searcher, nil), "/api/Analysis?query_phrase=go&format=csv")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, MSG_INVALID_FORMAT, decodeMessage(t, rr))
	assert.Equal(t, 0, searcher.calls)
}

func TestAnalysis_Grouped(t *testing.T) {
	searcher := &fakeSearcher{statuses: []models.TwitterStatus{
		status("1", "great"), status("2", "meh"), status("3", "bad"), status("4", "great"),
	}}
	rr := get(t, newTestRouter(searcher, nil), "/api/Analysis?query_phrase=golang")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var grouping models.SentimentGrouping
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grouping))
	require.Len(t, grouping["1"], 2)
	require.Len(t, grouping["0"], 1)
	require.Len(t, grouping["-1"], 1)
	assert.Equal(t, "1", grouping["1"][0].ID)
	assert.Equal(t, "4", grouping["1"][1].ID)
	assert.Equal(t, 0.8, grouping["1"][0].Polarity)
	assert.Equal(t, "u3", grouping["-1"][0].UserHandle)
}

func TestAnalysis_NoResults(t *testing.T) {
	rr := get(t, newTestRouter(&fakeSearcher{}, nil), "/api/Analysis?query_phrase=nothing")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())

	rr = get(t, newTestRouter(&fakeSearcher{}, nil), "/api/Analysis?query_phrase=nothing&format=list")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestAnalysis_List(t *testing.T) {
	searcher := &fakeSearcher{statuses: []models.TwitterStatus{status("1", "bad"), status("2", "great")}}
	rr := get(t, newTestRouter(searcher, nil), "/api/Analysis?query_phrase=golang&format=list")

	require.Equal(t, http.StatusOK, rr.Code)
	var posts []models.AnalyzedPost
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, -0.3, posts[0].Polarity)
	assert.Equal(t, "2", posts[1].ID)
}

func TestAnalysis_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		want     int
	}{
		{"timeout", &fakeSearcher{err: fmt.Errorf("x: %w", clients.ErrTwitterTimeout)}, http.StatusGatewayTimeout},
		{"unauthorized", &fakeSearcher{err: clients.ErrTwitterUnauthorized}, http.StatusBadGateway},
		{"rate limited", &fakeSearcher{err: clients.ErrTwitterRateLimited}, http.StatusBadGateway},
		{"unavailable", &fakeSearcher{err: clients.ErrTwitterUnavailable}, http.StatusBadGateway},
		{"unexpected", &fakeSearcher{err: clients.ErrTwitterUnexpected}, http.StatusBadGateway},
		{"scoring", &fakeSearcher{statuses: []models.TwitterStatus{status("1", "explode")}}, http.StatusInternalServerError},
		{"malformed", &fakeSearcher{statuses: []models.TwitterStatus{{IDStr: "1"}}}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, newTestRouter(tt.searcher, nil), "/api/Analysis?query_phrase=golang")
			assert.Equal(t, tt.want, rr.Code)
			assert.NotEmpty(t, decodeMessage(t, rr))
		})
	}
}

func TestStatusFor_Unknown(t *testing.T) {
	status, msg := StatusFor(errors.New("???"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotEmpty(t, msg)
}

func TestAnalysis_CORS(t *testing.T) {
	router := newTestRouter(&fakeSearcher{}, nil)

	rr := get(t, router, "/api/Analysis?query_phrase=go", "Origin", "https://example.com")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/Analysis", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	pre := httptest.NewRecorder()
	router.ServeHTTP(pre, req)
	assert.Less(t, pre.Code, 300)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndReady(t *testing.T) {
	var healthy atomic.Bool
	router := newTestRouter(&fakeSearcher{}, &healthy)

	assert.Equal(t, http.StatusOK, get(t, router, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, router, "/ready").Code)

	healthy.Store(true)
	assert.Equal(t, http.StatusOK, get(t, router, "/ready").Code)

	assert.Equal(t, http.StatusOK, get(t, newTestRouter(&fakeSearcher{}, nil), "/ready").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rr := get(t, newTestRouter(&fakeSearcher{}, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}
