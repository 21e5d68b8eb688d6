package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"osu-tracker/internal/constants"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/storage"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type profileRow struct {
	ID        int64  `db:"id"`
	DeviceID  string `db:"device_id"`
	OsuUserID int64  `db:"osu_user_id"`
	Username  string `db:"username"`
	AvatarURL string `db:"avatar_url"`
	CreatedAt int64  `db:"created_at"`
}

// ProfileRepository keeps the tracked profiles and the selection of every
// device.
type ProfileRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewProfileRepository(db *sqlx.DB, logger zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger, now: time.Now}
}

func (r *ProfileRepository) State(ctx context.Context, deviceID string) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return loadState(ctx, r.db, deviceID)
}

// Add inserts the profile unless the device already tracks it, then selects it.
func (r *ProfileRepository) Add(ctx context.Context, deviceID string, osuUserID int64, username, avatarURL string) (domain.ProfilesState, error) {
	return r.inTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (device_id, osu_user_id, username, avatar_url, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (device_id, osu_user_id) DO NOTHING
		`, deviceID, osuUserID, username, avatarURL, r.now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		return setSelection(ctx, tx, deviceID, &osuUserID)
	}, deviceID)
}

func (r *ProfileRepository) Remove(ctx context.Context, deviceID string, osuUserID int64) (domain.ProfilesState, error) {
	return r.inTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		state, err := loadState(ctx, tx, deviceID)
		if err != nil {
			return err
		}
		next := storage.ApplyRemove(state, strconv.FormatInt(osuUserID, 10))

		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE device_id = ? AND osu_user_id = ?`, deviceID, osuUserID); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return setSelection(ctx, tx, deviceID, parseSelection(next.SelectedID))
	}, deviceID)
}

// Select leaves the selection unchanged when the device does not track the id.
func (r *ProfileRepository) Select(ctx context.Context, deviceID string, osuUserID int64) (domain.ProfilesState, error) {
	return r.inTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		state, err := loadState(ctx, tx, deviceID)
		if err != nil {
			return err
		}
		next := storage.ApplySelect(state, strconv.FormatInt(osuUserID, 10))
		return setSelection(ctx, tx, deviceID, parseSelection(next.SelectedID))
	}, deviceID)
}

func (r *ProfileRepository) inTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error, deviceID string) (domain.ProfilesState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.ProfilesState{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		r.logger.Error().Err(err).Str("device_id", deviceID).Msg("profile update failed")
		return domain.ProfilesState{}, err
	}

	state, err := loadState(ctx, tx, deviceID)
	if err != nil {
		return domain.ProfilesState{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ProfilesState{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return state, nil
}

func loadState(ctx context.Context, q sqlx.QueryerContext, deviceID string) (domain.ProfilesState, error) {
	var rows []profileRow
	err := sqlx.SelectContext(ctx, q, &rows, `
		SELECT id, device_id, osu_user_id, username, avatar_url, created_at
		FROM profiles
		WHERE device_id = ?
		ORDER BY id
	`, deviceID)
	if err != nil {
		return domain.ProfilesState{}, fmt.Errorf("failed to list profiles: %w", err)
	}

	state := domain.ProfilesState{Profiles: make([]domain.Profile, 0, len(rows))}
	for _, row := range rows {
		state.Profiles = append(state.Profiles, domain.Profile{
			ID:        strconv.FormatInt(row.OsuUserID, 10),
			Username:  row.Username,
			AvatarURL: row.AvatarURL,
		})
	}

	var selected sql.NullInt64
	err = sqlx.GetContext(ctx, q, &selected, `SELECT osu_user_id FROM device_selection WHERE device_id = ?`, deviceID)
	if err != nil && err != sql.ErrNoRows {
		return domain.ProfilesState{}, fmt.Errorf("failed to read selection: %w", err)
	}
	if selected.Valid {
		id := strconv.FormatInt(selected.Int64, 10)
		state.SelectedID = &id
	}

	return storage.Sanitize(state), nil
}

func setSelection(ctx context.Context, tx *sqlx.Tx, deviceID string, osuUserID *int64) error {
	var value sql.NullInt64
	if osuUserID != nil {
		value = sql.NullInt64{Int64: *osuUserID, Valid: true}
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO device_selection (device_id, osu_user_id) VALUES (?, ?)
		ON CONFLICT (device_id) DO UPDATE SET osu_user_id = excluded.osu_user_id
	`, deviceID, value)
	if err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

func parseSelection(id *string) *int64 {
	if id == nil {
		return nil
	}
	v, err := strconv.ParseInt(*id, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
