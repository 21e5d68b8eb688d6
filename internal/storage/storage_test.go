package storage

import (
	"testing"
	"time"

	"osu-tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

func state(selected string, ids ...string) domain.ProfilesState {
	s := domain.ProfilesState{Profiles: []domain.Profile{}}
	for _, id := range ids {
		s.Profiles = append(s.Profiles, domain.Profile{ID: id})
	}
	if selected != "" {
		s.SelectedID = &selected
	}
	return s
}

func TestApplyAdd_NoDuplicates(t *testing.T) {
	t.Parallel()

	s := ApplyAdd(state("1", "1", "2"), domain.Profile{ID: "2"})
	require.Len(t, s.Profiles, 2)
	require.Equal(t, "2", *s.SelectedID)

	s = ApplyAdd(s, domain.Profile{ID: "3"})
	require.Len(t, s.Profiles, 3)
	require.Equal(t, "3", *s.SelectedID)
}

func TestApplyRemove(t *testing.T) {
	t.Parallel()

	s := ApplyRemove(state("2", "1", "2", "3"), "2")
	require.Equal(t, "1", *s.SelectedID)
	require.Len(t, s.Profiles, 2)

	s = ApplyRemove(state("3", "1", "2", "3"), "1")
	require.Equal(t, "3", *s.SelectedID)

	s = ApplyRemove(state("1", "1"), "1")
	require.Nil(t, s.SelectedID)
	require.Empty(t, s.Profiles)

	s = ApplyRemove(state("1", "1"), "missing")
	require.Equal(t, "1", *s.SelectedID)
}

func TestApplySelect_UnknownIsNoop(t *testing.T) {
	t.Parallel()

	s := ApplySelect(state("1", "1", "2"), "9")
	require.Equal(t, "1", *s.SelectedID)

	s = ApplySelect(state("", "1", "2"), "2")
	require.Equal(t, "2", *s.SelectedID)
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	dangling := "7"
	s := Sanitize(domain.ProfilesState{SelectedID: &dangling})
	require.NotNil(t, s.Profiles)
	require.Nil(t, s.SelectedID)
}

func TestSortNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reports := []domain.Report{
		{ID: "a", CreatedAt: base},
		{ID: "c", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b", CreatedAt: base.Add(time.Hour)},
	}
	SortNewestFirst(reports)
	require.Equal(t, "c", reports[0].ID)
	require.Equal(t, "b", reports[1].ID)
	require.Equal(t, "a", reports[2].ID)
}

func TestReportFilter(t *testing.T) {
	t.Parallel()

	r := domain.Report{UserID: "5", Mode: domain.ModeOsu}
	require.True(t, ReportFilter{}.Match(r))
	require.True(t, ReportFilter{UserID: "5"}.Match(r))
	require.False(t, ReportFilter{UserID: "6"}.Match(r))
	require.False(t, ReportFilter{Mode: domain.ModeMania}.Match(r))
}
