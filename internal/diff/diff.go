// Package diff compares two report snapshots.
//
// Ranks are the one place where a smaller number is better. Their delta is
// printed as the literal change (rank 100 -> 50 prints "-50") but classified
// with the opposite sign (an improvement, "up"). FieldDelta is the only code
// that knows this; everything else goes through it.
package diff

import (
	"osu-tracker/internal/domain"
)

type Kind string

const (
	KindInt     Kind = "int"
	KindPercent Kind = "pct"
	KindRank    Kind = "rank"
)

type Trend string

const (
	TrendUp    Trend = "up"
	TrendDown  Trend = "down"
	TrendEqual Trend = "equal"
	TrendNone  Trend = "none"
)

// Delta describes the change of one numeric field from source to result.
type Delta struct {
	// Raw is result - source, nil when either side is missing.
	Raw *float64 `json:"raw"`
	// UI is Raw with the sign used for colour and arrow.
	UI    *float64 `json:"ui"`
	Trend Trend    `json:"trend"`
	Arrow string   `json:"arrow"`
	// Text is always rendered from Raw.
	Text string `json:"text"`
}

func FieldDelta(kind Kind, source, result *float64) Delta {
	if source == nil || result == nil {
		return Delta{Trend: TrendNone, Text: placeholder}
	}

	raw := *result - *source
	ui := raw
	if kind == KindRank {
		ui = -raw
	}

	trend := classify(ui)
	return Delta{
		Raw:   &raw,
		UI:    &ui,
		Trend: trend,
		Arrow: arrow(trend),
		Text:  signed(kind, raw),
	}
}

func classify(ui float64) Trend {
	switch {
	case ui > 0:
		return TrendUp
	case ui < 0:
		return TrendDown
	default:
		return TrendEqual
	}
}

func arrow(t Trend) string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	case TrendEqual:
		return "→"
	default:
		return ""
	}
}

type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	// Value is the result report's value rendered for display.
	Value string `json:"value"`
	Delta Delta  `json:"delta"`
}

type View struct {
	SourceID string  `json:"sourceId"`
	ResultID string  `json:"resultId"`
	Stats    []Field `json:"stats"`
	Grades   []Field `json:"grades"`
	// Progress is empty when either report lacks a timestamp.
	Progress string `json:"progress"`
}

type statField struct {
	key   string
	label string
	kind  Kind
	get   func(domain.OsuStats) *float64
}

var statFields = []statField{
	{"globalRank", "World rank", KindRank, func(s domain.OsuStats) *float64 { return intValue(s.GlobalRank) }},
	{"countryRank", "Country rank", KindRank, func(s domain.OsuStats) *float64 { return intValue(s.CountryRank) }},
	{"pp", "PP", KindInt, func(s domain.OsuStats) *float64 { return s.PP }},
	{"accuracy", "Accuracy", KindPercent, func(s domain.OsuStats) *float64 { return s.Accuracy }},
	{"playcount", "Playcount", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Playcount) }},
	{"rankedScore", "Ranked score", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.RankedScore) }},
	{"totalScore", "Total score", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.TotalScore) }},
	{"totalHits", "Total hits", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.TotalHits) }},
	{"maximumCombo", "Max combo", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.MaximumCombo) }},
	{"replaysWatchedByOthers", "Replays watched", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.ReplaysWatchedByOthers) }},
}

var gradeFields = []statField{
	{"ssh", "SS+", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Grades.SSH) }},
	{"ss", "SS", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Grades.SS) }},
	{"sh", "S+", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Grades.SH) }},
	{"s", "S", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Grades.S) }},
	{"a", "A", KindInt, func(s domain.OsuStats) *float64 { return intValue(s.Grades.A) }},
}

// Compare computes every stats and grade delta from source to result.
func Compare(source, result domain.Report) View {
	return View{
		SourceID: source.ID,
		ResultID: result.ID,
		Stats:    fields(statFields, source.Stats, result.Stats),
		Grades:   fields(gradeFields, source.Stats, result.Stats),
		Progress: ProgressText(source.CreatedAt, result.CreatedAt),
	}
}

func fields(defs []statField, source, result domain.OsuStats) []Field {
	out := make([]Field, 0, len(defs))
	for _, f := range defs {
		value := f.get(result)
		out = append(out, Field{
			Key:   f.key,
			Label: f.label,
			Kind:  f.kind,
			Value: display(f.kind, value),
			Delta: FieldDelta(f.kind, f.get(source), value),
		})
	}
	return out
}

func intValue(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
