package clients

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// appOnlyTransport attaches an application-only bearer token. The token is
// fetched with the context of the request that needs it, so the caller's
// deadline also bounds the token exchange.
type appOnlyTransport struct {
	conf *clientcredentials.Config
	base http.RoundTripper

	mu    sync.Mutex
	token *oauth2.Token
}

func newAppOnlyTransport(conf *clientcredentials.Config) *appOnlyTransport {
	return &appOnlyTransport{conf: conf, base: http.DefaultTransport}
}

func (t *appOnlyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokenFor(req.Context())
	if err != nil {
		return nil, err
	}

	authed := req.Clone(req.Context())
	token.SetAuthHeader(authed)
	return t.base.RoundTrip(authed)
}

func (t *appOnlyTransport) tokenFor(ctx context.Context) (*oauth2.Token, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token.Valid() {
		return t.token, nil
	}

	tokenClient := &http.Client{Transport: t.base, Timeout: DEFAULT_HTTP_TIMEOUT}
	token, err := t.conf.Token(context.WithValue(ctx, oauth2.HTTPClient, tokenClient))
	if err != nil {
		return nil, err
	}
	t.token = token
	return token, nil
}
