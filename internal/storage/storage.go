// Package storage defines the persistence contract shared by the local file
// store and the remote sync service.
package storage

import (
	"context"
	"sort"
	"time"

	"osu-tracker/internal/domain"
)

//go:generate mockgen -destination=../../mocks/mock_backend.go -package=mocks osu-tracker/internal/storage Backend

// ReportFilter narrows ListReports. Empty fields match everything.
type ReportFilter struct {
	UserID string
	Mode   domain.Mode
}

func (f ReportFilter) Match(r domain.Report) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if f.Mode != "" && r.Mode != f.Mode {
		return false
	}
	return true
}

// Created is what a backend assigns to a new report. The id replaces any
// placeholder the caller had.
type Created struct {
	ID        string
	CreatedAt time.Time
}

// Backend is implemented by every storage variant. All errors are
// *domain.StorageError.
type Backend interface {
	ListReports(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	CreateReport(ctx context.Context, report domain.Report) (Created, error)
	// DeleteReport succeeds when the id does not exist.
	DeleteReport(ctx context.Context, id string) error

	GetProfiles(ctx context.Context) (domain.ProfilesState, error)
	// AddProfile appends the profile and selects it.
	AddProfile(ctx context.Context, profile domain.Profile) (domain.ProfilesState, error)
	// RemoveProfile drops the profile; if it was selected, the first remaining
	// profile (or none) becomes selected.
	RemoveProfile(ctx context.Context, id string) (domain.ProfilesState, error)
	// SelectProfile leaves the selection unchanged for unknown ids.
	SelectProfile(ctx context.Context, id string) (domain.ProfilesState, error)
}

// SortNewestFirst orders reports by CreatedAt, most recent first.
func SortNewestFirst(reports []domain.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
}

// Apply* implement the profile-set rules on an in-memory state so both
// variants (and the sync server) share them.

// Sanitize repairs a state read from disk: nil profile lists become empty and
// a selection pointing at no profile is cleared.
func Sanitize(state domain.ProfilesState) domain.ProfilesState {
	if state.Profiles == nil {
		state.Profiles = []domain.Profile{}
	}
	if state.SelectedID != nil && !state.Has(*state.SelectedID) {
		state.SelectedID = nil
	}
	return state
}

func ApplyAdd(state domain.ProfilesState, p domain.Profile) domain.ProfilesState {
	if !state.Has(p.ID) {
		state.Profiles = append(append([]domain.Profile(nil), state.Profiles...), p)
	}
	id := p.ID
	state.SelectedID = &id
	return state
}

func ApplyRemove(state domain.ProfilesState, id string) domain.ProfilesState {
	profiles := make([]domain.Profile, 0, len(state.Profiles))
	for _, p := range state.Profiles {
		if p.ID != id {
			profiles = append(profiles, p)
		}
	}
	state.Profiles = profiles

	if state.SelectedID != nil && *state.SelectedID == id {
		state.SelectedID = nil
		if len(profiles) > 0 {
			first := profiles[0].ID
			state.SelectedID = &first
		}
	}
	return state
}

func ApplySelect(state domain.ProfilesState, id string) domain.ProfilesState {
	if state.Has(id) {
		selected := id
		state.SelectedID = &selected
	}
	return state
}
