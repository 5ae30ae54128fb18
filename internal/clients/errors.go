package clients

import "errors"

// Failure classes surfaced by TwitterClient.Search. Callers match them with
// errors.Is; nothing in this package retries.
var (
	ErrTwitterUnauthorized = errors.New("twitter: unauthorized")
	ErrTwitterRateLimited  = errors.New("twitter: rate limit exceeded")
	ErrTwitterTimeout      = errors.New("twitter: request timed out")
	ErrTwitterUnavailable  = errors.New("twitter: service unavailable")
	ErrTwitterUnexpected   = errors.New("twitter: unexpected response")
)

var ErrHuggingFaceRequest = errors.New("huggingface: request failed")
