package service

import (
	"context"
	"fmt"
	"regexp"

	"osu-tracker/internal/constants"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/storage"

	"github.com/rs/zerolog"
)

var profileURLPattern = regexp.MustCompile(`(?i)osu\.ppy\.sh/users/(\d+)`)

// ProfileRegistry manages the tracked profiles and the selected one.
type ProfileRegistry struct {
	upstream Upstream
	backend  storage.Backend
	logger   zerolog.Logger
}

func NewProfileRegistry(upstream Upstream, backend storage.Backend, logger zerolog.Logger) *ProfileRegistry {
	return &ProfileRegistry{upstream: upstream, backend: backend, logger: logger}
}

func (s *ProfileRegistry) Get(ctx context.Context) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StorageTimeout)
	defer cancel()

	return s.backend.GetProfiles(ctx)
}

// ParseProfileURL extracts the numeric user id from an osu! profile link.
func ParseProfileURL(raw string) (string, error) {
	m := profileURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", &domain.ValidationError{Field: "url", Message: fmt.Sprintf("%q is not an osu! profile link", raw)}
	}
	return m[1], nil
}

// AddByURL adds the profile behind an osu! profile link and selects it. A
// profile that is already tracked is only selected.
func (s *ProfileRegistry) AddByURL(ctx context.Context, rawURL string) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	userID, err := ParseProfileURL(rawURL)
	if err != nil {
		s.logger.Warn().Str("url", rawURL).Msg("rejected profile url")
		return domain.ProfilesState{}, err
	}

	state, err := s.backend.GetProfiles(ctx)
	if err != nil {
		return domain.ProfilesState{}, err
	}
	if state.Has(userID) {
		s.logger.Info().Str("user_id", userID).Msg("profile already tracked, selecting")
		return s.backend.SelectProfile(ctx, userID)
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	profile, err := s.upstream.FetchProfile(apiCtx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to fetch profile")
		return domain.ProfilesState{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	state, err = s.backend.AddProfile(ctx, profile)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to add profile")
		return domain.ProfilesState{}, err
	}

	s.logger.Info().Str("user_id", profile.ID).Str("username", profile.Username).Msg("profile added")
	return state, nil
}

func (s *ProfileRegistry) Remove(ctx context.Context, id string) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StorageTimeout)
	defer cancel()

	state, err := s.backend.RemoveProfile(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to remove profile")
		return domain.ProfilesState{}, err
	}
	s.logger.Info().Str("user_id", id).Msg("profile removed")
	return state, nil
}

// Select is a no-op for ids that are not tracked.
func (s *ProfileRegistry) Select(ctx context.Context, id string) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StorageTimeout)
	defer cancel()

	state, err := s.backend.GetProfiles(ctx)
	if err != nil {
		return domain.ProfilesState{}, err
	}
	if !state.Has(id) {
		s.logger.Debug().Str("user_id", id).Msg("select ignored for unknown profile")
		return state, nil
	}
	return s.backend.SelectProfile(ctx, id)
}
