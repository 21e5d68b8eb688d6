package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"osu-tracker/internal/diff"
	"osu-tracker/internal/domain"
	"osu-tracker/internal/service"
	"osu-tracker/internal/storage/local"
	"osu-tracker/mocks"

	"connectrpc.com/connect"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type harness struct {
	url      string
	upstream *mocks.MockUpstream
	store    *local.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	up := mocks.NewMockUpstream(ctrl)
	store, err := local.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	srv := NewTrackerServer(
		service.NewProfileRegistry(up, store, zerolog.Nop()),
		service.NewReportStore(up, store, zerolog.Nop()),
	)
	path, handler := NewTrackerHandler(srv)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &harness{url: ts.URL, upstream: up, store: store}
}

func call[Req, Res any](t *testing.T, h *harness, procedure string, msg *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](http.DefaultClient, h.url+procedure, connect.WithCodec(JSONCodec{}))
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestProfilesFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.upstream.EXPECT().FetchProfile(gomock.Any(), "2").Return(domain.Profile{ID: "2", Username: "peppy"}, nil)

	state, err := call[AddProfileByURLRequest, domain.ProfilesState](t, h, AddProfileByURLProcedure, &AddProfileByURLRequest{URL: "https://osu.ppy.sh/users/2"})
	require.NoError(t, err)
	require.Len(t, state.Profiles, 1)
	require.Equal(t, "2", *state.SelectedID)

	state, err = call[ProfileIDRequest, domain.ProfilesState](t, h, SelectProfileProcedure, &ProfileIDRequest{ID: "nope"})
	require.NoError(t, err)
	require.Equal(t, "2", *state.SelectedID)

	state, err = call[ProfileIDRequest, domain.ProfilesState](t, h, RemoveProfileProcedure, &ProfileIDRequest{ID: "2"})
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
	require.Nil(t, state.SelectedID)

	state, err = call[GetProfilesRequest, domain.ProfilesState](t, h, GetProfilesProcedure, &GetProfilesRequest{})
	require.NoError(t, err)
	require.Empty(t, state.Profiles)
}

func TestAddProfileByURL_InvalidArgument(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	_, err := call[AddProfileByURLRequest, domain.ProfilesState](t, h, AddProfileByURLProcedure, &AddProfileByURLRequest{URL: "https://example.com"})
	require.Error(t, err)
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestReportsFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	older, err := h.store.CreateReport(ctx, domain.Report{
		UserID: "2", Mode: domain.ModeOsu, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Stats: domain.OsuStats{PP: func() *float64 { v := 100.0; return &v }()},
	})
	require.NoError(t, err)

	h.upstream.EXPECT().FetchUserStats(gomock.Any(), "2", domain.ModeOsu).
		Return(domain.Profile{ID: "2", Username: "peppy"}, domain.OsuStats{PP: func() *float64 { v := 150.0; return &v }()}, nil)
	h.upstream.EXPECT().FetchTopScores(gomock.Any(), "2", domain.ModeOsu).Return(nil, nil, nil)

	created, err := call[CreateReportRequest, domain.Report](t, h, CreateReportProcedure, &CreateReportRequest{UserID: "2", Mode: "osu"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "peppy", created.Username)

	list, err := call[ListReportsRequest, ListReportsResponse](t, h, ListReportsProcedure, &ListReportsRequest{UserID: "2"})
	require.NoError(t, err)
	require.Len(t, list.Reports, 2)
	require.Equal(t, created.ID, list.Reports[0].ID)

	view, err := call[CompareReportsRequest, diff.View](t, h, CompareReportsProcedure, &CompareReportsRequest{SourceID: older.ID, ResultID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "pp", view.Stats[2].Key)
	require.Equal(t, "+50", view.Stats[2].Delta.Text)

	_, err = call[CompareReportsRequest, diff.View](t, h, CompareReportsProcedure, &CompareReportsRequest{SourceID: older.ID, ResultID: "missing"})
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	del, err := call[DeleteReportRequest, DeleteReportResponse](t, h, DeleteReportProcedure, &DeleteReportRequest{ID: older.ID})
	require.NoError(t, err)
	require.True(t, del.OK)

	list, err = call[ListReportsRequest, ListReportsResponse](t, h, ListReportsProcedure, &ListReportsRequest{UserID: "2"})
	require.NoError(t, err)
	require.Len(t, list.Reports, 1)
}

func TestCreateReport_UpstreamCodes(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.upstream.EXPECT().FetchUserStats(gomock.Any(), "7", domain.ModeMania).
		Return(domain.Profile{}, domain.OsuStats{}, &domain.UpstreamError{Status: 404, Body: "not found"})
	h.upstream.EXPECT().FetchTopScores(gomock.Any(), "7", domain.ModeMania).Return(nil, nil, nil).AnyTimes()

	_, err := call[CreateReportRequest, domain.Report](t, h, CreateReportProcedure, &CreateReportRequest{UserID: "7", Mode: "mania"})
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[CreateReportRequest, domain.Report](t, h, CreateReportProcedure, &CreateReportRequest{UserID: "x", Mode: "mania"})
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestToConnectError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"validation", &domain.ValidationError{Field: "url", Message: "bad"}, connect.CodeInvalidArgument},
		{"auth", &domain.AuthError{Status: 401, Err: errors.New("denied")}, connect.CodeUnauthenticated},
		{"upstream 500", &domain.UpstreamError{Status: 500}, connect.CodeUnavailable},
		{"upstream 404", &domain.UpstreamError{Status: 404}, connect.CodeNotFound},
		{"unreachable", &domain.UpstreamError{Err: errors.New("dial")}, connect.CodeUnavailable},
		{"storage", domain.NewStorageError("read", errors.New("disk")), connect.CodeInternal},
		{"report missing", domain.ErrReportNotFound, connect.CodeNotFound},
		{"deadline", context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{"other", errors.New("x"), connect.CodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, connect.CodeOf(toConnectError(tc.err)))
		})
	}
}
