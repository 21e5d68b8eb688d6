package server

import (
	"osu-tracker/internal/domain"
)

const TrackerServiceName = "osutracker.v1.TrackerService"

const TrackerPath = "/" + TrackerServiceName + "/"

const (
	ListReportsProcedure     = TrackerPath + "ListReports"
	CreateReportProcedure    = TrackerPath + "CreateReport"
	DeleteReportProcedure    = TrackerPath + "DeleteReport"
	CompareReportsProcedure  = TrackerPath + "CompareReports"
	GetProfilesProcedure     = TrackerPath + "GetProfiles"
	AddProfileByURLProcedure = TrackerPath + "AddProfileByURL"
	SelectProfileProcedure   = TrackerPath + "SelectProfile"
	RemoveProfileProcedure   = TrackerPath + "RemoveProfile"
)

type ListReportsRequest struct {
	UserID string `json:"userId"`
	Mode   string `json:"mode,omitempty"`
}

type ListReportsResponse struct {
	Reports []domain.Report `json:"reports"`
}

type CreateReportRequest struct {
	Mode   string `json:"mode"`
	UserID string `json:"userId"`
}

type DeleteReportRequest struct {
	ID string `json:"id"`
}

type DeleteReportResponse struct {
	OK bool `json:"ok"`
}

type CompareReportsRequest struct {
	SourceID string `json:"sourceId"`
	ResultID string `json:"resultId"`
}

type GetProfilesRequest struct{}

type AddProfileByURLRequest struct {
	URL string `json:"url"`
}

type ProfileIDRequest struct {
	ID string `json:"id"`
}
