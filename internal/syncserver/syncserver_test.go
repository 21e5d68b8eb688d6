package syncserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"osu-tracker/internal/database"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/repository"
	"osu-tracker/internal/storage"
	"osu-tracker/internal/storage/remote"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "sync.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zerolog.Nop()
	h := NewHandler(repository.NewReportRepository(db, logger), repository.NewProfileRepository(db, logger), logger)
	ts := httptest.NewServer(NewRouter(h))
	t.Cleanup(ts.Close)
	return ts
}

func ptr[T any](v T) *T { return &v }

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeviceIDRequired(t *testing.T) {
	ts := newTestServer(t)

	requests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/reports", ""},
		{http.MethodGet, "/api/profiles", ""},
		{http.MethodDelete, "/api/report/1", ""},
		{http.MethodDelete, "/api/profiles/1", ""},
		{http.MethodPost, "/api/report", `{"osuUserId": 2, "report": {}}`},
		{http.MethodPost, "/api/profiles", `{"osuUserId": 2}`},
		{http.MethodPost, "/api/profiles/select", `{"osuUserId": 2}`},
	}
	for _, tc := range requests {
		req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(tc.body))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		var body errorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.path)
		require.Equal(t, "deviceId required", body.Error, tc.path)
	}
}

func TestCreateReportRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`not json`,
		`{"deviceId": "d", "report": {}}`,
		`{"deviceId": "d", "osuUserId": "abc", "report": {}}`,
		`{"deviceId": "d", "osuUserId": 2, "report": [1]}`,
		`{"deviceId": "d", "osuUserId": 2}`,
	} {
		resp, err := http.Post(ts.URL+"/api/report", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestCreateReportWireFormat(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/report", "application/json", strings.NewReader(
		`{"deviceId": "d", "osuUserId": "2", "username": "peppy", "mode": "osu", "report": {"title": "peppy report 01.01.2024", "stats": {"pp": 12.5}}}`))
	require.NoError(t, err)
	var created createReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.NotZero(t, created.ID)
	require.NotZero(t, created.CreatedAt)

	resp, err = http.Get(ts.URL + "/api/reports?deviceId=d&osuUserId=2&mode=osu")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	resp.Body.Close()

	require.Len(t, items, 1)
	require.Equal(t, float64(created.ID), items[0]["id"])
	require.Equal(t, float64(created.CreatedAt), items[0]["createdAt"])
	require.Equal(t, float64(2), items[0]["osuUserId"])
	require.Equal(t, "peppy report 01.01.2024", items[0]["title"])
	require.Equal(t, map[string]any{"pp": 12.5}, items[0]["stats"])
}

// The remote storage backend is the real client of this server, so the full
// backend contract is exercised through it.
func TestRemoteBackendRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	var backend storage.Backend = remote.NewWithDevice(ts.URL, "device-1", zerolog.Nop())
	other := remote.NewWithDevice(ts.URL, "device-2", zerolog.Nop())

	state, err := backend.GetProfiles(ctx)
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
	require.Nil(t, state.SelectedID)

	_, err = backend.AddProfile(ctx, domain.Profile{ID: "2", Username: "peppy", AvatarURL: "a.png"})
	require.NoError(t, err)
	state, err = backend.AddProfile(ctx, domain.Profile{ID: "3", Username: "other"})
	require.NoError(t, err)
	require.Equal(t, []domain.Profile{{ID: "2", Username: "peppy", AvatarURL: "a.png"}, {ID: "3", Username: "other"}}, state.Profiles)
	require.Equal(t, "3", *state.SelectedID)

	state, err = backend.SelectProfile(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, "2", *state.SelectedID)

	state, err = backend.SelectProfile(ctx, "404")
	require.NoError(t, err)
	require.Equal(t, "2", *state.SelectedID)

	state, err = backend.SelectProfile(ctx, "not-a-number")
	require.NoError(t, err)
	require.Equal(t, "2", *state.SelectedID)

	state, err = backend.RemoveProfile(ctx, "2")
	require.NoError(t, err)
	require.Len(t, state.Profiles, 1)
	require.Equal(t, "3", *state.SelectedID)

	otherState, err := other.GetProfiles(ctx)
	require.NoError(t, err)
	require.Empty(t, otherState.Profiles)

	report := domain.Report{
		ID:        "client-placeholder",
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Title:     "peppy report 01.01.2020",
		UserID:    "2",
		Username:  "peppy",
		Mode:      domain.ModeOsu,
		Stats:     domain.OsuStats{GlobalRank: ptr[int64](100), Grades: domain.Grades{SS: ptr[int64](4)}},
		BestScores: []domain.ScoreItem{{
			Title: "song", Mods: []string{"HD", "DT"}, ModNames: []string{"Hidden", "Double Time"}, BeatmapID: ptr[int64](1), BeatmapURL: "https://osu.ppy.sh/beatmaps/1",
		}},
		FirstScores: []domain.ScoreItem{},
	}

	before := time.Now().Add(-time.Second)
	first, err := backend.CreateReport(ctx, report)
	require.NoError(t, err)
	require.NotEqual(t, "client-placeholder", first.ID)
	require.True(t, first.CreatedAt.After(before), "server time replaces the client timestamp")

	second, err := backend.CreateReport(ctx, report)
	require.NoError(t, err)

	maniaReport := report
	maniaReport.Mode = domain.ModeMania
	_, err = backend.CreateReport(ctx, maniaReport)
	require.NoError(t, err)

	listed, err := backend.ListReports(ctx, storage.ReportFilter{UserID: "2", Mode: domain.ModeOsu})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, second.ID, listed[0].ID)
	require.Equal(t, first.ID, listed[1].ID)
	require.Equal(t, "2", listed[0].UserID)
	require.Equal(t, "peppy report 01.01.2020", listed[0].Title)
	require.Equal(t, report.Stats, listed[0].Stats)
	require.Equal(t, report.BestScores, listed[0].BestScores)
	require.Equal(t, []domain.ScoreItem{}, listed[0].FirstScores)
	require.Equal(t, time.UTC, listed[0].CreatedAt.Location())

	all, err := backend.ListReports(ctx, storage.ReportFilter{UserID: "2"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	otherReports, err := other.ListReports(ctx, storage.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, otherReports)

	require.NoError(t, backend.DeleteReport(ctx, first.ID))
	require.NoError(t, backend.DeleteReport(ctx, first.ID))
	require.NoError(t, backend.DeleteReport(ctx, "never-existed"))

	listed, err = backend.ListReports(ctx, storage.ReportFilter{UserID: "2", Mode: domain.ModeOsu})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, second.ID, listed[0].ID)
}

func TestRemoteBackendSurfacesServerErrors(t *testing.T) {
	ts := newTestServer(t)

	backend := remote.NewWithDevice(ts.URL, "", zerolog.Nop())
	_, err := backend.GetProfiles(context.Background())

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Contains(t, err.Error(), "deviceId required")
}
