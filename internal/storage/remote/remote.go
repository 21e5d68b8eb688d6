// Package remote talks to the sync service, which keeps profiles and reports
// per device so several installations can share one history.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"osu-tracker/internal/config"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/normalize"
	"osu-tracker/internal/storage"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Client struct {
	baseURL  string
	deviceID string
	client   *fasthttp.Client
	logger   zerolog.Logger
}

var _ storage.Backend = (*Client)(nil)

func New(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	deviceID, err := LoadDeviceID(cfg.DataDir)
	if err != nil {
		return nil, domain.NewStorageError("device id", err)
	}
	return NewWithDevice(cfg.SyncBaseURL, deviceID, logger), nil
}

func NewWithDevice(baseURL, deviceID string, logger zerolog.Logger) *Client {
	c := &Client{
		baseURL:  baseURL,
		deviceID: deviceID,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("storage", "remote").Str("device_id", deviceID).Logger(),
	}
	c.logger.Info().Str("base_url", baseURL).Msg("remote storage configured")
	return c
}

func (c *Client) DeviceID() string { return c.deviceID }

func (c *Client) ListReports(ctx context.Context, filter storage.ReportFilter) ([]domain.Report, error) {
	q := url.Values{"deviceId": {c.deviceID}}
	if filter.UserID != "" {
		q.Set("osuUserId", filter.UserID)
	}
	if filter.Mode != "" {
		q.Set("mode", string(filter.Mode))
	}

	var items []wireReport
	if err := c.call(ctx, "list reports", fasthttp.MethodGet, "/api/reports?"+q.Encode(), nil, &items); err != nil {
		return nil, err
	}

	reports := make([]domain.Report, 0, len(items))
	for _, it := range items {
		r := domain.Report{
			ID:          string(it.ID),
			Title:       it.Title,
			UserID:      firstNonEmpty(string(it.UserID), string(it.OsuUserID), filter.UserID),
			Username:    it.Username,
			AvatarURL:   it.AvatarURL,
			Mode:        normalize.Mode(firstNonEmpty(it.Mode, string(filter.Mode))),
			Stats:       it.Stats,
			BestScores:  it.BestScores,
			FirstScores: it.FirstScores,
		}
		if ts, ok := NormalizeTimestamp(it.CreatedAt); ok {
			r.CreatedAt = ts
		}
		if filter.Match(r) {
			reports = append(reports, r)
		}
	}
	storage.SortNewestFirst(reports)
	return reports, nil
}

// CreateReport sends the report and adopts the server's id and timestamp. The
// client-side id is never sent back to callers.
func (c *Client) CreateReport(ctx context.Context, report domain.Report) (storage.Created, error) {
	uid, err := strconv.ParseInt(report.UserID, 10, 64)
	if err != nil {
		return storage.Created{}, domain.NewStorageError("create report", fmt.Errorf("user id %q is not numeric", report.UserID))
	}

	report.ID = ""
	body := createReportRequest{
		DeviceID:  c.deviceID,
		OsuUserID: uid,
		Username:  report.Username,
		Mode:      report.Mode,
		Report:    report,
	}

	var resp createReportResponse
	if err := c.call(ctx, "create report", fasthttp.MethodPost, "/api/report", body, &resp); err != nil {
		return storage.Created{}, err
	}
	if resp.ID == "" {
		return storage.Created{}, domain.NewStorageError("create report", errors.New("server returned no id"))
	}

	created := storage.Created{ID: string(resp.ID), CreatedAt: report.CreatedAt}
	if ts, ok := NormalizeTimestamp(resp.CreatedAt); ok {
		created.CreatedAt = ts
	}
	return created, nil
}

func (c *Client) DeleteReport(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/report/%s?%s", url.PathEscape(id), url.Values{"deviceId": {c.deviceID}}.Encode())
	return c.call(ctx, "delete report", fasthttp.MethodDelete, path, nil, nil)
}

func (c *Client) GetProfiles(ctx context.Context) (domain.ProfilesState, error) {
	return c.profilesCall(ctx, "get profiles", fasthttp.MethodGet, "/api/profiles?"+url.Values{"deviceId": {c.deviceID}}.Encode(), nil)
}

func (c *Client) AddProfile(ctx context.Context, profile domain.Profile) (domain.ProfilesState, error) {
	uid, err := strconv.ParseInt(profile.ID, 10, 64)
	if err != nil {
		return domain.ProfilesState{}, domain.NewStorageError("add profile", fmt.Errorf("profile id %q is not numeric", profile.ID))
	}
	body := addProfileRequest{
		DeviceID:  c.deviceID,
		OsuUserID: uid,
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
	}
	return c.profilesCall(ctx, "add profile", fasthttp.MethodPost, "/api/profiles", body)
}

func (c *Client) RemoveProfile(ctx context.Context, id string) (domain.ProfilesState, error) {
	path := fmt.Sprintf("/api/profiles/%s?%s", url.PathEscape(id), url.Values{"deviceId": {c.deviceID}}.Encode())
	return c.profilesCall(ctx, "remove profile", fasthttp.MethodDelete, path, nil)
}

func (c *Client) SelectProfile(ctx context.Context, id string) (domain.ProfilesState, error) {
	uid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		// not a valid osu! id, so it cannot be a known profile
		return c.GetProfiles(ctx)
	}
	body := selectProfileRequest{DeviceID: c.deviceID, OsuUserID: uid}
	return c.profilesCall(ctx, "select profile", fasthttp.MethodPost, "/api/profiles/select", body)
}

func (c *Client) profilesCall(ctx context.Context, op, method, path string, body any) (domain.ProfilesState, error) {
	var resp wireProfilesState
	if err := c.call(ctx, op, method, path, body, &resp); err != nil {
		return domain.ProfilesState{}, err
	}
	return storage.Sanitize(resp.toDomain()), nil
}

// call performs one JSON round trip. Non-2xx responses become StorageErrors
// carrying the server's {"error": ...} message when present.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewStorageError(op, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := ctx.Err(); err != nil {
		return domain.NewStorageError(op, err)
	}
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		c.logger.Error().Err(err).Str("op", op).Msg("sync service unreachable")
		return domain.NewStorageError(op, err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		msg := fmt.Sprintf("%s failed (%d)", op, status)
		var e errorResponse
		if json.Unmarshal(resp.Body(), &e) == nil && e.Error != "" {
			msg = e.Error
		}
		c.logger.Warn().Int("status", status).Str("op", op).Str("error", msg).Msg("sync service returned an error")
		return domain.NewStorageError(op, errors.New(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.NewStorageError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
