package remote

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"osu-tracker/internal/domain"
)

var epochMillisPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeTimestamp accepts epoch milliseconds as a number, epoch
// milliseconds as a string (the sync database may render "1768825099857.0"),
// or an ISO-8601 string. The result is UTC.
func NormalizeTimestamp(raw json.RawMessage) (time.Time, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		var f float64
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return time.Time{}, false
		}
		return fromMillis(f)
	}

	s = strings.TrimSpace(s)
	if epochMillisPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(f)
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	whole := math.Trunc(ms)
	return time.UnixMilli(int64(whole)).Add(time.Duration((ms - whole) * float64(time.Millisecond))).UTC(), true
}

// flexID decodes ids that the sync service may send as numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*f = flexID(strings.TrimSuffix(n.String(), ".0"))
	return nil
}

type wireProfile struct {
	ID        flexID `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type wireProfilesState struct {
	Profiles   []wireProfile `json:"profiles"`
	SelectedID *flexID       `json:"selectedId"`
}

func (w wireProfilesState) toDomain() domain.ProfilesState {
	state := domain.ProfilesState{Profiles: make([]domain.Profile, 0, len(w.Profiles))}
	for _, p := range w.Profiles {
		state.Profiles = append(state.Profiles, domain.Profile{
			ID:        string(p.ID),
			Username:  p.Username,
			AvatarURL: p.AvatarURL,
		})
	}
	if w.SelectedID != nil && *w.SelectedID != "" {
		id := string(*w.SelectedID)
		state.SelectedID = &id
	}
	return state
}

type wireReport struct {
	ID          flexID             `json:"id"`
	CreatedAt   json.RawMessage    `json:"createdAt"`
	Title       string             `json:"title"`
	UserID      flexID             `json:"userId"`
	OsuUserID   flexID             `json:"osuUserId"`
	Username    string             `json:"username"`
	AvatarURL   string             `json:"avatarUrl"`
	Mode        string             `json:"mode"`
	Stats       domain.OsuStats    `json:"stats"`
	BestScores  []domain.ScoreItem `json:"bestScores"`
	FirstScores []domain.ScoreItem `json:"firstScores"`
}

type createReportRequest struct {
	DeviceID  string        `json:"deviceId"`
	OsuUserID int64         `json:"osuUserId"`
	Username  string        `json:"username"`
	Mode      domain.Mode   `json:"mode"`
	Report    domain.Report `json:"report"`
}

type createReportResponse struct {
	ID        flexID          `json:"id"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

type addProfileRequest struct {
	DeviceID  string `json:"deviceId"`
	OsuUserID int64  `json:"osuUserId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type selectProfileRequest struct {
	DeviceID  string `json:"deviceId"`
	OsuUserID int64  `json:"osuUserId"`
}

type errorResponse struct {
	Error string `json:"error"`
}
