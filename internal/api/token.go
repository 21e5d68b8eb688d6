package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"osu-tracker/internal/config"
	"osu-tracker/internal/constants"
	"osu-tracker/internal/domain"

	"github.com/valyala/fasthttp"
)

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// CredentialCache issues client-credentials bearer tokens for the osu! API and
// keeps the most recent one until it is about to expire.
type CredentialCache struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *fasthttp.Client
	now          func() time.Time

	mu     sync.Mutex
	cached *cachedToken
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewCredentialCache(cfg *config.Config) *CredentialCache {
	return &CredentialCache{
		clientID:     cfg.OsuClientID,
		clientSecret: cfg.OsuClientSecret,
		tokenURL:     cfg.OsuBaseURL + "/oauth/token",
		client:       newHTTPClient(),
		now:          time.Now,
	}
}

// Token returns a bearer token with at least constants.TokenExpirySkew of
// validity left, requesting a new one when needed. The cached pair is only
// replaced as a whole.
func (c *CredentialCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.cached != nil && c.cached.expiresAt.After(now.Add(constants.TokenExpirySkew)) {
		return c.cached.token, nil
	}

	tok, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.cached = &cachedToken{
		token:     tok.AccessToken,
		expiresAt: now.Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	return tok.AccessToken, nil
}

func (c *CredentialCache) requestToken(ctx context.Context) (*tokenResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"public"},
	}

	req.SetRequestURI(c.tokenURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBodyString(form.Encode())

	if err := do(ctx, c.client, req, resp); err != nil {
		return nil, &domain.AuthError{Err: err}
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, &domain.AuthError{Status: status, Err: errors.New(string(resp.Body()))}
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return nil, &domain.AuthError{Status: resp.StatusCode(), Err: err}
	}
	if tok.AccessToken == "" {
		return nil, &domain.AuthError{Status: resp.StatusCode(), Err: errors.New("empty access_token")}
	}
	return &tok, nil
}
