package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"osu-tracker/internal/config"
	"osu-tracker/internal/constants"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/normalize"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"
)

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type OsuClient struct {
	baseURL string
	tokens  TokenSource
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewOsuClient(cfg *config.Config, tokens *CredentialCache, logger zerolog.Logger) *OsuClient {
	return &OsuClient{
		baseURL: cfg.OsuBaseURL,
		tokens:  tokens,
		client:  newHTTPClient(),
		logger:  logger,
	}
}

func newHTTPClient() *fasthttp.Client {
	return &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         10 * time.Second,
		WriteTimeout:        10 * time.Second,
		MaxIdleConnDuration: 1 * time.Minute,
	}
}

// FetchProfile reads username and avatar. They do not depend on the mode, so
// the osu! variant is always used.
func (c *OsuClient) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := c.fetchUser(ctx, userID, domain.ModeOsu)
	if err != nil {
		return domain.Profile{}, err
	}
	return normalize.Profile(*user, userID), nil
}

func (c *OsuClient) FetchUserStats(ctx context.Context, userID string, mode domain.Mode) (domain.Profile, domain.OsuStats, error) {
	user, err := c.fetchUser(ctx, userID, mode)
	if err != nil {
		return domain.Profile{}, domain.OsuStats{}, err
	}
	return normalize.Profile(*user, userID), normalize.Stats(user.Statistics), nil
}

// FetchTopScores loads the best and first-place top lists concurrently. Both
// must succeed.
func (c *OsuClient) FetchTopScores(ctx context.Context, userID string, mode domain.Mode) ([]domain.ScoreItem, []domain.ScoreItem, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var best, firsts []domain.ScoreItem

	g.Go(func() error {
		var err error
		best, err = c.fetchScores(gCtx, userID, mode, "best")
		return err
	})

	g.Go(func() error {
		var err error
		firsts, err = c.fetchScores(gCtx, userID, mode, "firsts")
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Error().Err(err).Str("user_id", userID).Str("mode", string(mode)).Msg("failed to fetch top scores")
		return nil, nil, err
	}

	c.logger.Debug().
		Str("user_id", userID).
		Str("mode", string(mode)).
		Int("best", len(best)).
		Int("firsts", len(firsts)).
		Msg("top scores fetched")
	return best, firsts, nil
}

func (c *OsuClient) fetchUser(ctx context.Context, userID string, mode domain.Mode) (*normalize.RawUser, error) {
	u := fmt.Sprintf("%s/api/v2/users/%s/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(string(mode)))
	return doRequest[normalize.RawUser](ctx, c, u)
}

func (c *OsuClient) fetchScores(ctx context.Context, userID string, mode domain.Mode, kind string) ([]domain.ScoreItem, error) {
	q := url.Values{
		"mode":  {string(mode)},
		"limit": {fmt.Sprint(constants.TopScoresLimit)},
	}
	u := fmt.Sprintf("%s/api/v2/users/%s/scores/%s?%s", c.baseURL, url.PathEscape(userID), kind, q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return normalize.Scores(normalize.DecodeScores(body), constants.TopScoresLimit), nil
}

func doRequest[T any](ctx context.Context, client *OsuClient, url string) (*T, error) {
	body, err := client.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode osu response: %w", err)
	}
	return &result, nil
}

// get performs an authorized GET and returns a copy of the body. A 401 is
// reported like any other status; the token is not refreshed and retried.
func (c *OsuClient) get(ctx context.Context, url string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	if err := do(ctx, c.client, req, resp); err != nil {
		return nil, &domain.UpstreamError{Err: err}
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		c.logger.Warn().Int("status", status).Str("url", url).Msg("osu api returned an error")
		return nil, &domain.UpstreamError{Status: status, Body: string(resp.Body())}
	}

	return append([]byte(nil), resp.Body()...), nil
}

func do(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return client.DoDeadline(req, resp, deadline)
	}
	return client.Do(req, resp)
}
