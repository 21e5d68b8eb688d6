package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"osu-tracker/internal/domain"
	"osu-tracker/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	return store, dir
}

func ptr[T any](v T) *T { return &v }

func sampleReport(userID string, mode domain.Mode, at time.Time) domain.Report {
	return domain.Report{
		ID:        "placeholder",
		CreatedAt: at,
		Title:     domain.ReportTitle("tester", at),
		UserID:    userID,
		Username:  "tester",
		Mode:      mode,
		Stats: domain.OsuStats{
			GlobalRank: ptr[int64](1200),
			PP:         ptr(4321.5),
			Grades:     domain.Grades{SS: ptr[int64](3)},
		},
		BestScores: []domain.ScoreItem{{
			Artist: "a", Title: "t", Difficulty: "d",
			Mods: []string{"HD"}, BeatmapURL: "https://osu.ppy.sh/beatmaps/1", BeatmapID: ptr[int64](1),
		}},
		FirstScores: []domain.ScoreItem{},
	}
}

func TestOpenRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := Open("", zerolog.Nop())
	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
}

func TestOpenInitializesProfiles(t *testing.T) {
	t.Parallel()

	store, dir := openTempStore(t)
	raw, err := os.ReadFile(filepath.Join(dir, "profiles.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"profiles":[],"selectedId":null}`, string(raw))

	state, err := store.GetProfiles(context.Background())
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
	require.Nil(t, state.SelectedID)
}

func TestOpenResetsCorruptProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles.json"), []byte("{not json"), 0o600))

	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	state, err := store.GetProfiles(context.Background())
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
}

func TestCreateListRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := openTempStore(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := sampleReport("100", domain.ModeMania, at)

	created, err := store.CreateReport(ctx, in)
	require.NoError(t, err)
	require.NotEqual(t, "placeholder", created.ID)
	require.Regexp(t, `^\d+-[A-Za-z0-9_-]{10}$`, created.ID)
	require.True(t, created.CreatedAt.Equal(at))

	got, err := store.ListReports(ctx, storage.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, created.ID, got[0].ID)
	require.Equal(t, in.Stats, got[0].Stats)
	require.Equal(t, in.BestScores, got[0].BestScores)
	require.NotNil(t, got[0].FirstScores)
	require.Equal(t, in.FirstScores, got[0].FirstScores)
	require.Equal(t, in.Title, got[0].Title)
}

func TestListFiltersAndSortsNewestFirst(t *testing.T) {
	t.Parallel()

	store, _ := openTempStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, userID := range []string{"1", "2", "1", "1"} {
		mode := domain.ModeOsu
		if i == 3 {
			mode = domain.ModeMania
		}
		_, err := store.CreateReport(ctx, sampleReport(userID, mode, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	got, err := store.ListReports(ctx, storage.ReportFilter{UserID: "1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.True(t, got[0].CreatedAt.Equal(base.Add(3*time.Hour)))
	require.True(t, got[2].CreatedAt.Equal(base))

	got, err = store.ListReports(ctx, storage.ReportFilter{UserID: "1", Mode: domain.ModeOsu})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestDeleteReportIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := openTempStore(t)
	ctx := context.Background()

	created, err := store.CreateReport(ctx, sampleReport("1", domain.ModeOsu, time.Now()))
	require.NoError(t, err)

	require.NoError(t, store.DeleteReport(ctx, created.ID))
	require.NoError(t, store.DeleteReport(ctx, created.ID))
	require.NoError(t, store.DeleteReport(ctx, "never-existed"))

	got, err := store.ListReports(ctx, storage.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCorruptReportsFileIsAnError(t *testing.T) {
	t.Parallel()

	store, dir := openTempStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reports.json"), []byte("[{"), 0o600))

	_, err := store.ListReports(context.Background(), storage.ReportFilter{})
	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
	require.Equal(t, "list reports", storageErr.Op)

	_, err = store.CreateReport(context.Background(), sampleReport("1", domain.ModeOsu, time.Now()))
	require.Error(t, err)

	raw, readErr := os.ReadFile(filepath.Join(dir, "reports.json"))
	require.NoError(t, readErr)
	require.Equal(t, "[{", string(raw))
}

func TestProfileLifecycle(t *testing.T) {
	t.Parallel()

	store, _ := openTempStore(t)
	ctx := context.Background()

	state, err := store.AddProfile(ctx, domain.Profile{ID: "1", Username: "one"})
	require.NoError(t, err)
	require.Equal(t, "1", *state.SelectedID)

	state, err = store.AddProfile(ctx, domain.Profile{ID: "2", Username: "two"})
	require.NoError(t, err)
	require.Len(t, state.Profiles, 2)
	require.Equal(t, "2", *state.SelectedID)

	state, err = store.SelectProfile(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "1", *state.SelectedID)

	state, err = store.SelectProfile(ctx, "404")
	require.NoError(t, err)
	require.Equal(t, "1", *state.SelectedID)

	state, err = store.RemoveProfile(ctx, "1")
	require.NoError(t, err)
	require.Len(t, state.Profiles, 1)
	require.Equal(t, "2", *state.SelectedID)

	state, err = store.RemoveProfile(ctx, "2")
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
	require.Nil(t, state.SelectedID)

	persisted, err := store.GetProfiles(ctx)
	require.NoError(t, err)
	require.Equal(t, state, persisted)
}
