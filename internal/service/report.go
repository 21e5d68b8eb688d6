package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"osu-tracker/internal/constants"
	"osu-tracker/internal/diff"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/normalize"
	"osu-tracker/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReportStore creates snapshots from the osu! API and persists them through
// the active backend.
type ReportStore struct {
	upstream Upstream
	backend  storage.Backend
	logger   zerolog.Logger
	now      func() time.Time
}

func NewReportStore(upstream Upstream, backend storage.Backend, logger zerolog.Logger) *ReportStore {
	return &ReportStore{upstream: upstream, backend: backend, logger: logger, now: time.Now}
}

// Create fetches a fresh snapshot for the user and persists it. Nothing is
// stored unless every upstream call succeeded.
func (s *ReportStore) Create(ctx context.Context, userID, mode string) (domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	userID = strings.TrimSpace(userID)
	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		return domain.Report{}, &domain.ValidationError{Field: "userId", Message: fmt.Sprintf("%q is not a numeric osu! user id", userID)}
	}
	m := normalize.Mode(mode)

	s.logger.Info().Str("user_id", userID).Str("mode", string(m)).Msg("creating report")

	var (
		profile     domain.Profile
		stats       domain.OsuStats
		best, first []domain.ScoreItem
	)

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	g, gctx := errgroup.WithContext(apiCtx)
	g.Go(func() error {
		var err error
		profile, stats, err = s.upstream.FetchUserStats(gctx, userID, m)
		return err
	})
	g.Go(func() error {
		var err error
		best, first, err = s.upstream.FetchTopScores(gctx, userID, m)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("mode", string(m)).Msg("failed to fetch snapshot")
		return domain.Report{}, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	now := s.now()
	report := domain.Report{
		CreatedAt:   now.UTC(),
		Title:       domain.ReportTitle(profile.Username, now),
		UserID:      userID,
		Username:    profile.Username,
		AvatarURL:   profile.AvatarURL,
		Mode:        m,
		Stats:       stats,
		BestScores:  nonNil(best),
		FirstScores: nonNil(first),
	}

	created, err := s.backend.CreateReport(ctx, report)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to persist report")
		return domain.Report{}, err
	}
	report.ID = created.ID
	if !created.CreatedAt.IsZero() {
		report.CreatedAt = created.CreatedAt
	}

	s.logger.Info().Str("report_id", report.ID).Str("user_id", userID).Str("mode", string(m)).Msg("report created")
	return report, nil
}

// List returns the persisted reports matching filter, newest first.
func (s *ReportStore) List(ctx context.Context, filter storage.ReportFilter) ([]domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StorageTimeout)
	defer cancel()

	reports, err := s.backend.ListReports(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", filter.UserID).Msg("failed to list reports")
		return nil, err
	}
	storage.SortNewestFirst(reports)

	s.logger.Debug().Str("user_id", filter.UserID).Int("count", len(reports)).Msg("reports listed")
	return reports, nil
}

// Get looks up one report. Unknown ids yield domain.ErrReportNotFound.
func (s *ReportStore) Get(ctx context.Context, id string) (domain.Report, error) {
	reports, err := s.List(ctx, storage.ReportFilter{})
	if err != nil {
		return domain.Report{}, err
	}
	for _, r := range reports {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Report{}, fmt.Errorf("%w: %s", domain.ErrReportNotFound, id)
}

// Delete is idempotent.
func (s *ReportStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.StorageTimeout)
	defer cancel()

	if err := s.backend.DeleteReport(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("report_id", id).Msg("failed to delete report")
		return err
	}
	s.logger.Info().Str("report_id", id).Msg("report deleted")
	return nil
}

// Compare loads both reports and diffs them.
func (s *ReportStore) Compare(ctx context.Context, sourceID, resultID string) (diff.View, error) {
	source, err := s.Get(ctx, sourceID)
	if err != nil {
		return diff.View{}, err
	}
	result, err := s.Get(ctx, resultID)
	if err != nil {
		return diff.View{}, err
	}
	return diff.Compare(source, result), nil
}

func nonNil(items []domain.ScoreItem) []domain.ScoreItem {
	if items == nil {
		return []domain.ScoreItem{}
	}
	return items
}
