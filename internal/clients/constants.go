package clients

import "time"

const (
	USER_AGENT = "sentiscope-client/1.0 (+https://github.com/spacesedan/sentiscope)"

	TWITTER_SEARCH_PATH = "/1.1/search/tweets.json"
	TWITTER_TOKEN_PATH  = "/oauth2/token"

	DEFAULT_HTTP_TIMEOUT = 30 * time.Second
	HEALTHCHECK_TIMEOUT  = 5 * time.Second
)
