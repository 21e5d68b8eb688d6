package syncserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"osu-tracker/internal/repository"
)

// osuUserID accepts a JSON number or a numeric string.
type osuUserID int64

func (u *osuUserID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*u = 0
		return nil
	}
	raw := strings.Trim(string(trimmed), `"`)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("osuUserId %s is not numeric", trimmed)
	}
	*u = osuUserID(v)
	return nil
}

type createReportRequest struct {
	DeviceID  string          `json:"deviceId"`
	OsuUserID osuUserID       `json:"osuUserId"`
	Username  string          `json:"username"`
	Mode      string          `json:"mode"`
	Report    json.RawMessage `json:"report"`
}

type createReportResponse struct {
	ID        int64 `json:"id"`
	CreatedAt int64 `json:"createdAt"`
}

type addProfileRequest struct {
	DeviceID  string    `json:"deviceId"`
	OsuUserID osuUserID `json:"osuUserId"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl"`
}

type selectProfileRequest struct {
	DeviceID  string    `json:"deviceId"`
	OsuUserID osuUserID `json:"osuUserId"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// reportDocument is the part of a stored payload the server hands back.
type reportDocument struct {
	Title       string          `json:"title"`
	AvatarURL   string          `json:"avatarUrl"`
	Stats       json.RawMessage `json:"stats"`
	BestScores  json.RawMessage `json:"bestScores"`
	FirstScores json.RawMessage `json:"firstScores"`
}

type reportItem struct {
	ID          int64           `json:"id"`
	CreatedAt   int64           `json:"createdAt"`
	OsuUserID   int64           `json:"osuUserId"`
	Username    string          `json:"username"`
	Mode        string          `json:"mode"`
	Title       string          `json:"title"`
	AvatarURL   string          `json:"avatarUrl"`
	Stats       json.RawMessage `json:"stats,omitempty"`
	BestScores  json.RawMessage `json:"bestScores,omitempty"`
	FirstScores json.RawMessage `json:"firstScores,omitempty"`
}

func toReportItem(row repository.ReportRow) reportItem {
	var doc reportDocument
	// payloads were checked to be objects on the way in
	_ = json.Unmarshal([]byte(row.Payload), &doc)

	return reportItem{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt,
		OsuUserID:   row.OsuUserID,
		Username:    row.Username,
		Mode:        row.Mode,
		Title:       doc.Title,
		AvatarURL:   doc.AvatarURL,
		Stats:       nullToNil(doc.Stats),
		BestScores:  nullToNil(doc.BestScores),
		FirstScores: nullToNil(doc.FirstScores),
	}
}

func nullToNil(raw json.RawMessage) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
