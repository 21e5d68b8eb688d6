package normalize

import (
	"fmt"
	"strings"

	"osu-tracker/internal/domain"
)

const (
	placeholder       = "—"
	beatmapURLPattern = "https://osu.ppy.sh/beatmaps/%d"
	fallbackURL       = "https://osu.ppy.sh/"
)

// Score maps one raw score into a ScoreItem. The beatmapset may sit next to
// the beatmap or inside it.
func Score(raw RawScore) domain.ScoreItem {
	beatmap := object(raw.Beatmap)
	beatmapset := object(raw.Beatmapset)
	if beatmapset == nil && beatmap != nil {
		beatmapset = object(beatmap["beatmapset"])
	}

	item := domain.ScoreItem{
		Artist:     textOr(beatmapset["artist"], placeholder),
		Title:      textOr(beatmapset["title"], placeholder),
		Difficulty: textOr(beatmap["version"], placeholder),
		Accuracy:   number(raw.Accuracy),
		PP:         number(raw.PP),
		Mods:       Mods(raw.Mods, raw.EnabledMods),
		BeatmapURL: fallbackURL,
	}
	item.ModNames = ModNames(item.Mods)

	if rank, ok := text(raw.Rank); ok && rank != "" {
		rank = strings.ToUpper(rank)
		item.Rank = &rank
	}

	if id := integer(beatmap["id"]); id != nil {
		item.BeatmapID = id
		if *id != 0 {
			item.BeatmapURL = fmt.Sprintf(beatmapURLPattern, *id)
		}
	}

	if createdAt, ok := text(raw.CreatedAt); ok && createdAt != "" {
		item.CreatedAt = &createdAt
	}

	return item
}

// Scores normalizes at most limit scores, keeping upstream order.
func Scores(raw []RawScore, limit int) []domain.ScoreItem {
	if limit >= 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	out := make([]domain.ScoreItem, 0, len(raw))
	for _, s := range raw {
		out = append(out, Score(s))
	}
	return out
}

// Mode maps any value other than "osu" to mania.
func Mode(mode string) domain.Mode {
	if strings.EqualFold(strings.TrimSpace(mode), string(domain.ModeOsu)) {
		return domain.ModeOsu
	}
	return domain.ModeMania
}
