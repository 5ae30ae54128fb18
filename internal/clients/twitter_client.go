package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type TwitterClient struct {
	BaseURL string
	Client  *http.Client
}

// NewTwitterClient signs requests with OAuth 1.0a when an access token pair is
// configured and uses an application-only bearer token otherwise.
func NewTwitterClient(cfg config.TwitterConfig) *TwitterClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	var httpClient *http.Client
	if cfg.UserContext() {
		slog.Info("[TwitterClient] Using OAuth1 user context")
		oauthConf := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
		token := oauth1.NewToken(cfg.AccessTokenKey, cfg.AccessTokenSecret)
		httpClient = oauthConf.Client(oauth1.NoContext, token)
	} else {
		slog.Info("[TwitterClient] Using application-only auth")
		oauthConf := &clientcredentials.Config{
			ClientID:     cfg.ConsumerKey,
			ClientSecret: cfg.ConsumerSecret,
			TokenURL:     baseURL + TWITTER_TOKEN_PATH,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		httpClient = &http.Client{Transport: newAppOnlyTransport(oauthConf)}
	}
	httpClient.Timeout = DEFAULT_HTTP_TIMEOUT

	return NewTwitterClientWithHTTP(baseURL, httpClient)
}

// NewTwitterClientWithHTTP uses httpClient as is. It must already attach
// credentials.
func NewTwitterClientWithHTTP(baseURL string, httpClient *http.Client) *TwitterClient {
	return &TwitterClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  httpClient,
	}
}

// Search runs a standard search with a pre-encoded query string and returns
// the statuses in the order Twitter sent them.
func (tc *TwitterClient) Search(ctx context.Context, rawQuery string) ([]models.TwitterStatus, error) {
	endpoint := tc.BaseURL + TWITTER_SEARCH_PATH + "?" + rawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("[TwitterClient] failed to build request: %w: %w", ErrTwitterUnexpected, err)
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	resp, err := tc.Client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var result models.TwitterSearchResponse
		if err := json.Unmarshal(body, &result); err != nil {
			slog.Error("[TwitterClient] Failed to parse JSON response",
				slog.String("error", err.Error()),
				getPreview(body))
			return nil, fmt.Errorf("[TwitterClient] failed to parse search response: %w: %w", ErrTwitterUnexpected, err)
		}
		slog.Debug("[TwitterClient] Search completed",
			slog.Int("statuses", len(result.Statuses)))
		return result.Statuses, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		slog.Error("[TwitterClient] Credentials rejected", slog.Int("status", resp.StatusCode))
		return nil, statusError(ErrTwitterUnauthorized, resp.StatusCode, body)
	case resp.StatusCode == http.StatusTooManyRequests:
		slog.Warn("[TwitterClient] 429 Too Many Requests",
			slog.String("reset", resp.Header.Get("x-rate-limit-reset")))
		return nil, statusError(ErrTwitterRateLimited, resp.StatusCode, body)
	case resp.StatusCode >= http.StatusInternalServerError:
		slog.Warn("[TwitterClient] Server error", slog.Int("status", resp.StatusCode))
		return nil, statusError(ErrTwitterUnavailable, resp.StatusCode, body)
	default:
		slog.Warn("[TwitterClient] Unexpected response", slog.Int("status", resp.StatusCode))
		return nil, statusError(ErrTwitterUnexpected, resp.StatusCode, body)
	}
}

func statusError(kind error, status int, body []byte) error {
	msg := twitterErrorMessage(body)
	if msg == "" {
		return fmt.Errorf("[TwitterClient] status %d: %w", status, kind)
	}
	return fmt.Errorf("[TwitterClient] status %d (%s): %w", status, msg, kind)
}

func twitterErrorMessage(body []byte) string {
	var errResp models.TwitterErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(errResp.Errors))
	for _, e := range errResp.Errors {
		msgs = append(msgs, fmt.Sprintf("%d: %s", e.Code, e.Message))
	}
	return strings.Join(msgs, "; ")
}

func classifyTransportError(ctx context.Context, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		switch retrieveErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
			return fmt.Errorf("[TwitterClient] token request rejected: %w: %w", ErrTwitterUnauthorized, err)
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("[TwitterClient] search request failed: %w: %w", ErrTwitterTimeout, err)
	}

	return fmt.Errorf("[TwitterClient] search request failed: %w: %w", ErrTwitterUnavailable, err)
}
