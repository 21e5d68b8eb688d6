package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"osu-tracker/internal/diff"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/normalize"
	"osu-tracker/internal/service"
	"osu-tracker/internal/storage"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	profiles *service.ProfileRegistry
	reports  *service.ReportStore
}

func NewTrackerServer(profiles *service.ProfileRegistry, reports *service.ReportStore) *TrackerServer {
	return &TrackerServer{profiles: profiles, reports: reports}
}

// NewTrackerHandler mounts every procedure of the tracker service and returns
// the path prefix to serve it under.
func NewTrackerHandler(s *TrackerServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ListReportsProcedure, connect.NewUnaryHandler(ListReportsProcedure, s.ListReports, opts...))
	mux.Handle(CreateReportProcedure, connect.NewUnaryHandler(CreateReportProcedure, s.CreateReport, opts...))
	mux.Handle(DeleteReportProcedure, connect.NewUnaryHandler(DeleteReportProcedure, s.DeleteReport, opts...))
	mux.Handle(CompareReportsProcedure, connect.NewUnaryHandler(CompareReportsProcedure, s.CompareReports, opts...))
	mux.Handle(GetProfilesProcedure, connect.NewUnaryHandler(GetProfilesProcedure, s.GetProfiles, opts...))
	mux.Handle(AddProfileByURLProcedure, connect.NewUnaryHandler(AddProfileByURLProcedure, s.AddProfileByURL, opts...))
	mux.Handle(SelectProfileProcedure, connect.NewUnaryHandler(SelectProfileProcedure, s.SelectProfile, opts...))
	mux.Handle(RemoveProfileProcedure, connect.NewUnaryHandler(RemoveProfileProcedure, s.RemoveProfile, opts...))
	return TrackerPath, mux
}

func (s *TrackerServer) ListReports(ctx context.Context, req *connect.Request[ListReportsRequest]) (*connect.Response[ListReportsResponse], error) {
	defer timed(ctx, "ListReports")()

	filter := storage.ReportFilter{UserID: strings.TrimSpace(req.Msg.UserID)}
	if req.Msg.Mode != "" {
		filter.Mode = normalize.Mode(req.Msg.Mode)
	}
	reports, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, toConnectError(err)
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	return connect.NewResponse(&ListReportsResponse{Reports: reports}), nil
}

func (s *TrackerServer) CreateReport(ctx context.Context, req *connect.Request[CreateReportRequest]) (*connect.Response[domain.Report], error) {
	defer timed(ctx, "CreateReport")()

	report, err := s.reports.Create(ctx, req.Msg.UserID, req.Msg.Mode)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&report), nil
}

func (s *TrackerServer) DeleteReport(ctx context.Context, req *connect.Request[DeleteReportRequest]) (*connect.Response[DeleteReportResponse], error) {
	defer timed(ctx, "DeleteReport")()

	if err := s.reports.Delete(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteReportResponse{OK: true}), nil
}

func (s *TrackerServer) CompareReports(ctx context.Context, req *connect.Request[CompareReportsRequest]) (*connect.Response[diff.View], error) {
	defer timed(ctx, "CompareReports")()

	view, err := s.reports.Compare(ctx, req.Msg.SourceID, req.Msg.ResultID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&view), nil
}

func (s *TrackerServer) GetProfiles(ctx context.Context, _ *connect.Request[GetProfilesRequest]) (*connect.Response[domain.ProfilesState], error) {
	state, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&state), nil
}

func (s *TrackerServer) AddProfileByURL(ctx context.Context, req *connect.Request[AddProfileByURLRequest]) (*connect.Response[domain.ProfilesState], error) {
	defer timed(ctx, "AddProfileByURL")()

	state, err := s.profiles.AddByURL(ctx, req.Msg.URL)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&state), nil
}

func (s *TrackerServer) SelectProfile(ctx context.Context, req *connect.Request[ProfileIDRequest]) (*connect.Response[domain.ProfilesState], error) {
	state, err := s.profiles.Select(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&state), nil
}

func (s *TrackerServer) RemoveProfile(ctx context.Context, req *connect.Request[ProfileIDRequest]) (*connect.Response[domain.ProfilesState], error) {
	state, err := s.profiles.Remove(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&state), nil
}

func timed(ctx context.Context, procedure string) func() {
	start := time.Now()
	return func() {
		zerolog.Ctx(ctx).Debug().
			Str("procedure", procedure).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("procedure finished")
	}
}

func toConnectError(err error) error {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		upstreamErr   *domain.UpstreamError
		storageErr    *domain.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &authErr):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.As(err, &upstreamErr):
		if upstreamErr.Status == http.StatusNotFound {
			return connect.NewError(connect.CodeNotFound, err)
		}
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, domain.ErrReportNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &storageErr):
		return connect.NewError(connect.CodeInternal, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
