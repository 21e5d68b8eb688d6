// Package local stores reports and profiles as two JSON documents in a data
// directory owned by this process. Each call is an independent
// read-modify-write; concurrent writers from other processes are last-writer-wins.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"osu-tracker/internal/config"
	"osu-tracker/internal/constants"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/storage"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Store struct {
	reportsPath  string
	profilesPath string
	logger       zerolog.Logger
	now          func() time.Time

	// serialises read-modify-write cycles inside this process
	mu sync.Mutex
}

var _ storage.Backend = (*Store)(nil)

func New(cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	return Open(cfg.DataDir, logger)
}

func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, domain.NewStorageError("open", errors.New("data directory is required"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.NewStorageError("open", err)
	}

	s := &Store{
		reportsPath:  filepath.Join(dir, constants.ReportsFile),
		profilesPath: filepath.Join(dir, constants.ProfilesFile),
		logger:       logger.With().Str("storage", "local").Logger(),
		now:          time.Now,
	}
	if err := s.ensureProfilesInitialized(); err != nil {
		return nil, err
	}

	s.logger.Info().Str("dir", dir).Msg("local storage opened")
	return s, nil
}

func (s *Store) ListReports(ctx context.Context, filter storage.ReportFilter) ([]domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.readReports()
	if err != nil {
		return nil, domain.NewStorageError("list reports", err)
	}

	out := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	storage.SortNewestFirst(out)
	return out, nil
}

func (s *Store) CreateReport(ctx context.Context, report domain.Report) (storage.Created, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.readReports()
	if err != nil {
		return storage.Created{}, domain.NewStorageError("create report", err)
	}

	now := s.now()
	suffix, err := gonanoid.New(10)
	if err != nil {
		return storage.Created{}, domain.NewStorageError("create report", fmt.Errorf("failed to generate nanoid: %w", err))
	}

	report.ID = fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now.UTC()
	}

	reports = append(reports, report)
	if err := writeJSON(s.reportsPath, reports); err != nil {
		return storage.Created{}, domain.NewStorageError("create report", err)
	}

	s.logger.Debug().Str("report_id", report.ID).Str("user_id", report.UserID).Msg("report stored")
	return storage.Created{ID: report.ID, CreatedAt: report.CreatedAt}, nil
}

func (s *Store) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.readReports()
	if err != nil {
		return domain.NewStorageError("delete report", err)
	}

	next := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(reports) {
		return nil
	}

	if err := writeJSON(s.reportsPath, next); err != nil {
		return domain.NewStorageError("delete report", err)
	}
	return nil
}

func (s *Store) GetProfiles(ctx context.Context) (domain.ProfilesState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readProfiles()
	if err != nil {
		return domain.ProfilesState{}, domain.NewStorageError("get profiles", err)
	}
	return state, nil
}

func (s *Store) AddProfile(ctx context.Context, profile domain.Profile) (domain.ProfilesState, error) {
	return s.updateProfiles("add profile", func(state domain.ProfilesState) domain.ProfilesState {
		return storage.ApplyAdd(state, profile)
	})
}

func (s *Store) RemoveProfile(ctx context.Context, id string) (domain.ProfilesState, error) {
	return s.updateProfiles("remove profile", func(state domain.ProfilesState) domain.ProfilesState {
		return storage.ApplyRemove(state, id)
	})
}

func (s *Store) SelectProfile(ctx context.Context, id string) (domain.ProfilesState, error) {
	return s.updateProfiles("select profile", func(state domain.ProfilesState) domain.ProfilesState {
		return storage.ApplySelect(state, id)
	})
}

func (s *Store) updateProfiles(op string, apply func(domain.ProfilesState) domain.ProfilesState) (domain.ProfilesState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readProfiles()
	if err != nil {
		return domain.ProfilesState{}, domain.NewStorageError(op, err)
	}

	next := storage.Sanitize(apply(state))
	if err := writeJSON(s.profilesPath, next); err != nil {
		return domain.ProfilesState{}, domain.NewStorageError(op, err)
	}
	return next, nil
}

// readReports treats a missing file as empty. A file that does not parse is
// an error so it is never silently overwritten.
func (s *Store) readReports() ([]domain.Report, error) {
	var reports []domain.Report
	found, err := readJSON(s.reportsPath, &reports)
	if err != nil {
		return nil, err
	}
	if !found || reports == nil {
		return []domain.Report{}, nil
	}
	return reports, nil
}

func (s *Store) readProfiles() (domain.ProfilesState, error) {
	var state domain.ProfilesState
	if _, err := readJSON(s.profilesPath, &state); err != nil {
		return domain.ProfilesState{}, err
	}
	return storage.Sanitize(state), nil
}

// ensureProfilesInitialized replaces an unreadable profiles document with an
// empty one.
func (s *Store) ensureProfilesInitialized() error {
	var state domain.ProfilesState
	found, err := readJSON(s.profilesPath, &state)
	if err == nil && found {
		return nil
	}
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return domain.NewStorageError("open", err)
		}
		s.logger.Warn().Err(err).Str("path", s.profilesPath).Msg("profiles file is corrupt, resetting")
	}

	empty := domain.ProfilesState{Profiles: []domain.Profile{}}
	if err := writeJSON(s.profilesPath, empty); err != nil {
		return domain.NewStorageError("open", err)
	}
	return nil
}

func readJSON(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, err
	}
	return true, nil
}

// writeJSON replaces path atomically via a temp file in the same directory.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
