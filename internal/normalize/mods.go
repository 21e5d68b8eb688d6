package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	keyModPattern = regexp.MustCompile(`^K(\d+)$`)
	keyCountMod   = regexp.MustCompile(`^(\d+)K$`)
)

// legacy acronyms still returned for old plays
var modAliases = map[string]string{
	"RX": "RL",
	"CN": "CM",
	"CO": "CP",
}

var modNames = map[string]string{
	"EZ": "Easy",
	"NF": "No Fail",
	"HT": "Half Time",

	"HR": "Hard Rock",
	"SD": "Sudden Death",
	"PF": "Perfect",
	"DT": "Double Time",
	"NC": "Nightcore",
	"HD": "Hidden",
	"FI": "Fade In",
	"FL": "Flashlight",

	"RL": "Relax",
	"AP": "Autopilot",
	"SO": "Spun Out",

	"MR": "Mirror",
	"RD": "Random",
	"CP": "Co-op",

	"TD":  "Touch Device",
	"AT":  "Auto",
	"CM":  "Cinema",
	"SV2": "ScoreV2",
	"TP":  "Target Practice",
}

// Mod returns the canonical acronym for a mod code: upper-cased, "K4" spelled
// "4K", legacy aliases replaced.
func Mod(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if m := keyModPattern.FindStringSubmatch(c); m != nil {
		return m[1] + "K"
	}
	if alias, ok := modAliases[c]; ok {
		return alias
	}
	return c
}

// ModName is the human readable name of a canonical mod code. Unknown codes
// are returned unchanged.
func ModName(code string) string {
	c := Mod(code)
	if m := keyCountMod.FindStringSubmatch(c); m != nil {
		return m[1] + " Keys"
	}
	if name, ok := modNames[c]; ok {
		return name
	}
	return c
}

// ModNames maps canonical codes to display names, keeping order.
func ModNames(mods []string) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, ModName(m))
	}
	return out
}

// Mods extracts mod codes from either the "mods" field or the legacy
// "enabled_mods" field. Elements may be plain acronyms or {"acronym": ...}
// objects; anything else is dropped. The result is never nil.
func Mods(mods, enabledMods json.RawMessage) []string {
	items, ok := array(mods)
	if !ok {
		items, _ = array(enabledMods)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		code := Mod(modCode(item))
		if code == "" {
			continue
		}
		out = append(out, code)
	}
	return out
}

func modCode(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}
	if obj := object(item); obj != nil {
		if n := number(obj["acronym"]); n != nil && *n == 0 {
			return ""
		}
		if acronym, ok := text(obj["acronym"]); ok {
			return acronym
		}
	}
	return ""
}
