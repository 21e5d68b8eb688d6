// Package syncserver serves the multi-device store that the remote storage
// backend talks to. Every call is scoped by an opaque device id.
package syncserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"osu-tracker/internal/middleware"
	"osu-tracker/internal/normalize"
	"osu-tracker/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var errDeviceIDRequired = errors.New("deviceId required")

type Handler struct {
	reports  *repository.ReportRepository
	profiles *repository.ProfileRepository
	logger   zerolog.Logger
}

func NewHandler(reports *repository.ReportRepository, profiles *repository.ProfileRepository, logger zerolog.Logger) *Handler {
	return &Handler{reports: reports, profiles: profiles, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	deviceID := strings.TrimSpace(q.Get("deviceId"))
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}

	query := repository.ReportQuery{DeviceID: deviceID}
	if raw := strings.TrimSpace(q.Get("osuUserId")); raw != "" {
		uid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("osuUserId must be numeric"))
			return
		}
		query.OsuUserID = &uid
	}
	if raw := strings.TrimSpace(q.Get("mode")); raw != "" {
		query.Mode = string(normalize.Mode(raw))
	}

	rows, err := h.reports.List(r.Context(), query)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	items := make([]reportItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toReportItem(row))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var in createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json body"))
		return
	}
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}
	if in.OsuUserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("osuUserId required"))
		return
	}
	payload := bytes.TrimSpace(in.Report)
	if len(payload) == 0 || payload[0] != '{' {
		writeError(w, http.StatusBadRequest, errors.New("report must be an object"))
		return
	}

	row, err := h.reports.Create(r.Context(), repository.ReportRow{
		DeviceID:  in.DeviceID,
		OsuUserID: int64(in.OsuUserID),
		Username:  in.Username,
		Mode:      string(normalize.Mode(in.Mode)),
		Payload:   string(payload),
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Int64("report_id", row.ID).
		Str("device_id", row.DeviceID).
		Int64("osu_user_id", row.OsuUserID).
		Msg("report stored")
	writeJSON(w, http.StatusOK, createReportResponse{ID: row.ID, CreatedAt: row.CreatedAt})
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimSpace(r.URL.Query().Get("deviceId"))
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}

	// an id that is not a number cannot exist
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		if err := h.reports.Delete(r.Context(), deviceID, id); err != nil {
			h.internalError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *Handler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimSpace(r.URL.Query().Get("deviceId"))
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}

	state, err := h.profiles.State(r.Context(), deviceID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) AddProfile(w http.ResponseWriter, r *http.Request) {
	var in addProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json body"))
		return
	}
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}
	if in.OsuUserID <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("osuUserId required"))
		return
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = "user_" + strconv.FormatInt(int64(in.OsuUserID), 10)
	}

	state, err := h.profiles.Add(r.Context(), in.DeviceID, int64(in.OsuUserID), username, in.AvatarURL)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) RemoveProfile(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimSpace(r.URL.Query().Get("deviceId"))
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.GetProfiles(w, r)
		return
	}

	state, err := h.profiles.Remove(r.Context(), deviceID, id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) SelectProfile(w http.ResponseWriter, r *http.Request) {
	var in selectProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json body"))
		return
	}
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		writeError(w, http.StatusBadRequest, errDeviceIDRequired)
		return
	}

	state, err := h.profiles.Select(r.Context(), in.DeviceID, int64(in.OsuUserID))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:     "internal error",
		RequestID: middleware.GetRequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
