package normalize

import (
	"osu-tracker/internal/domain"
)

// Profile extracts identity fields. fallbackID is used when the payload has no
// id; the username then defaults to "user_{id}".
func Profile(raw RawUser, fallbackID string) domain.Profile {
	id, ok := idText(raw.ID)
	if !ok {
		id = fallbackID
	}
	return domain.Profile{
		ID:        id,
		Username:  textOr(raw.Username, "user_"+id),
		AvatarURL: textOr(raw.AvatarURL, ""),
	}
}

// Stats converts the statistics block. Missing fields, including a missing
// block, stay nil.
func Stats(raw *RawStatistics) domain.OsuStats {
	if raw == nil {
		return domain.OsuStats{}
	}
	stats := domain.OsuStats{
		GlobalRank:             integer(raw.GlobalRank),
		CountryRank:            integer(raw.CountryRank),
		PP:                     number(raw.PP),
		Accuracy:               number(raw.HitAccuracy),
		Playcount:              integer(raw.PlayCount),
		RankedScore:            integer(raw.RankedScore),
		TotalScore:             integer(raw.TotalScore),
		TotalHits:              integer(raw.TotalHits),
		MaximumCombo:           integer(raw.MaximumCombo),
		ReplaysWatchedByOthers: integer(raw.ReplaysWatchedByOthers),
	}
	if g := raw.GradeCounts; g != nil {
		stats.Grades = domain.Grades{
			SS:  integer(g.SS),
			SSH: integer(g.SSH),
			S:   integer(g.S),
			SH:  integer(g.SH),
			A:   integer(g.A),
		}
	}
	return stats
}
