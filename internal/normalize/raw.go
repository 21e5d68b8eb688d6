// Package normalize converts osu! API payloads into the internal report schema.
// Every upstream field is optional here; nothing outside this package reads raw
// payloads.
package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawUser is the subset of GET /api/v2/users/{id}/{mode} the tracker reads.
type RawUser struct {
	ID         json.RawMessage `json:"id"`
	Username   json.RawMessage `json:"username"`
	AvatarURL  json.RawMessage `json:"avatar_url"`
	Statistics *RawStatistics  `json:"statistics"`
}

type RawStatistics struct {
	GlobalRank             json.RawMessage `json:"global_rank"`
	CountryRank            json.RawMessage `json:"country_rank"`
	PP                     json.RawMessage `json:"pp"`
	HitAccuracy            json.RawMessage `json:"hit_accuracy"`
	PlayCount              json.RawMessage `json:"play_count"`
	RankedScore            json.RawMessage `json:"ranked_score"`
	TotalScore             json.RawMessage `json:"total_score"`
	TotalHits              json.RawMessage `json:"total_hits"`
	MaximumCombo           json.RawMessage `json:"maximum_combo"`
	ReplaysWatchedByOthers json.RawMessage `json:"replays_watched_by_others"`
	GradeCounts            *RawGradeCounts `json:"grade_counts"`
}

type RawGradeCounts struct {
	SS  json.RawMessage `json:"ss"`
	SSH json.RawMessage `json:"ssh"`
	S   json.RawMessage `json:"s"`
	SH  json.RawMessage `json:"sh"`
	A   json.RawMessage `json:"a"`
}

// RawScore is one element of GET /api/v2/users/{id}/scores/{type}. Nested
// objects stay raw because their shape differs between API versions.
type RawScore struct {
	Beatmap     json.RawMessage `json:"beatmap"`
	Beatmapset  json.RawMessage `json:"beatmapset"`
	Rank        json.RawMessage `json:"rank"`
	Accuracy    json.RawMessage `json:"accuracy"`
	PP          json.RawMessage `json:"pp"`
	Mods        json.RawMessage `json:"mods"`
	EnabledMods json.RawMessage `json:"enabled_mods"`
	CreatedAt   json.RawMessage `json:"created_at"`
}

// DecodeScores accepts any body: a non-array decodes to no scores and an
// undecodable element becomes an all-default score.
func DecodeScores(body []byte) []RawScore {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil
	}
	out := make([]RawScore, 0, len(items))
	for _, item := range items {
		var s RawScore
		if err := json.Unmarshal(item, &s); err != nil {
			s = RawScore{}
		}
		out = append(out, s)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// object decodes raw as a JSON object; anything else yields nil.
func object(raw json.RawMessage) map[string]json.RawMessage {
	if isNull(raw) {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func array(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// number returns raw only when it is a JSON number.
func number(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

func integer(raw json.RawMessage) *int64 {
	if isNull(raw) || bytes.TrimSpace(raw)[0] == '"' {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	if i, err := n.Int64(); err == nil {
		return &i
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	i := int64(f)
	return &i
}

// text renders a scalar as a string. Strings are unquoted, other scalars keep
// their JSON spelling; null and missing values report false.
func text(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "false" {
		return "", false
	}
	return trimmed, true
}

func textOr(raw json.RawMessage, fallback string) string {
	if s, ok := text(raw); ok {
		return s
	}
	return fallback
}

// idText renders a numeric or string id.
func idText(raw json.RawMessage) (string, bool) {
	if i := integer(raw); i != nil {
		return strconv.FormatInt(*i, 10), true
	}
	s, ok := text(raw)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
