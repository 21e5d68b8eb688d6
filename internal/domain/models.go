package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeOsu   Mode = "osu"
	ModeMania Mode = "mania"
)

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// ProfilesState is the tracked profile set plus the selection pointer.
// SelectedID is nil or the id of one of Profiles.
type ProfilesState struct {
	Profiles   []Profile `json:"profiles"`
	SelectedID *string   `json:"selectedId"`
}

func (s ProfilesState) Has(id string) bool {
	_, ok := s.Find(id)
	return ok
}

func (s ProfilesState) Find(id string) (Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

type Grades struct {
	SS  *int64 `json:"ss"`
	SSH *int64 `json:"ssh"`
	S   *int64 `json:"s"`
	SH  *int64 `json:"sh"`
	A   *int64 `json:"a"`
}

type OsuStats struct {
	GlobalRank             *int64   `json:"globalRank"`
	CountryRank            *int64   `json:"countryRank"`
	PP                     *float64 `json:"pp"`
	Accuracy               *float64 `json:"accuracy"` // 0..100
	Playcount              *int64   `json:"playcount"`
	RankedScore            *int64   `json:"rankedScore"`
	TotalScore             *int64   `json:"totalScore"`
	TotalHits              *int64   `json:"totalHits"`
	MaximumCombo           *int64   `json:"maximumCombo"`
	ReplaysWatchedByOthers *int64   `json:"replaysWatchedByOthers"`
	Grades                 Grades   `json:"grades"`
}

type ScoreItem struct {
	Artist     string   `json:"artist"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Rank       *string  `json:"rank"`
	Accuracy   *float64 `json:"accuracy"` // 0..1
	PP         *float64 `json:"pp"`
	Mods       []string `json:"mods"`
	ModNames   []string `json:"modNames"`
	BeatmapID  *int64   `json:"beatmapId"`
	BeatmapURL string   `json:"beatmapUrl"`
	CreatedAt  *string  `json:"createdAt"`
}

// Report is an immutable snapshot. ID and CreatedAt are owned by the storage
// backend that persisted it.
type Report struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"createdAt"`
	Title       string      `json:"title"`
	UserID      string      `json:"userId"`
	Username    string      `json:"username"`
	AvatarURL   string      `json:"avatarUrl"`
	Mode        Mode        `json:"mode"`
	Stats       OsuStats    `json:"stats"`
	BestScores  []ScoreItem `json:"bestScores"`
	FirstScores []ScoreItem `json:"firstScores"`
}

// ReportTitle renders "{username} report dd.mm.yyyy" for the given instant.
func ReportTitle(username string, at time.Time) string {
	return fmt.Sprintf("%s report %02d.%02d.%d", username, at.Day(), int(at.Month()), at.Year())
}
