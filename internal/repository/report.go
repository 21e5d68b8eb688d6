package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"osu-tracker/internal/constants"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// ReportRow is one stored report. Payload is the report document as sent by
// the client; the columns around it are the server-owned identity.
type ReportRow struct {
	ID        int64  `db:"id"`
	DeviceID  string `db:"device_id"`
	OsuUserID int64  `db:"osu_user_id"`
	Username  string `db:"username"`
	Mode      string `db:"mode"`
	Payload   string `db:"payload"`
	CreatedAt int64  `db:"created_at"` // epoch millis
}

type ReportQuery struct {
	DeviceID  string
	OsuUserID *int64
	Mode      string
}

type ReportRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportRepository(db *sqlx.DB, logger zerolog.Logger) *ReportRepository {
	return &ReportRepository{db: db, logger: logger, now: time.Now}
}

// Create stores a report and returns the row with its assigned id and
// creation time.
func (r *ReportRepository) Create(ctx context.Context, row ReportRow) (ReportRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	row.CreatedAt = r.now().UnixMilli()

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO reports (device_id, osu_user_id, username, mode, payload, created_at)
		VALUES (:device_id, :osu_user_id, :username, :mode, :payload, :created_at)
	`, row)
	if err != nil {
		return ReportRow{}, fmt.Errorf("failed to insert report: %w", err)
	}
	row.ID, err = res.LastInsertId()
	if err != nil {
		return ReportRow{}, fmt.Errorf("failed to read report id: %w", err)
	}

	r.logger.Debug().Int64("report_id", row.ID).Str("device_id", row.DeviceID).Msg("report inserted")
	return row, nil
}

// List returns the device's reports newest first.
func (r *ReportRepository) List(ctx context.Context, q ReportQuery) ([]ReportRow, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	where := []string{"device_id = ?"}
	args := []any{q.DeviceID}
	if q.OsuUserID != nil {
		where = append(where, "osu_user_id = ?")
		args = append(args, *q.OsuUserID)
	}
	if q.Mode != "" {
		where = append(where, "mode = ?")
		args = append(args, q.Mode)
	}

	query := `
		SELECT id, device_id, osu_user_id, username, mode, payload, created_at
		FROM reports
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC, id DESC
	`

	rows := []ReportRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return rows, nil
}

// Delete is a no-op for ids the device does not own.
func (r *ReportRepository) Delete(ctx context.Context, deviceID string, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE device_id = ? AND id = ?`, deviceID, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}
