package service

import (
	"context"

	"osu-tracker/internal/domain"
)

//go:generate mockgen -destination=../../mocks/mock_upstream.go -package=mocks osu-tracker/internal/service Upstream

// Upstream is the subset of the osu! client the services need.
type Upstream interface {
	FetchProfile(ctx context.Context, userID string) (domain.Profile, error)
	FetchUserStats(ctx context.Context, userID string, mode domain.Mode) (domain.Profile, domain.OsuStats, error)
	FetchTopScores(ctx context.Context, userID string, mode domain.Mode) ([]domain.ScoreItem, []domain.ScoreItem, error)
}
