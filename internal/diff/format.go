package diff

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const placeholder = "—"

var printer = message.NewPrinter(language.English)

// signed renders a delta with an explicit "+" for positive values. Integer
// kinds are rounded and grouped ("+1,500"), percentages keep two decimals.
func signed(kind Kind, v float64) string {
	sign := ""
	if v > 0 {
		sign = "+"
	}
	if kind == KindPercent {
		return sign + fmt.Sprintf("%.2f%%", v)
	}
	return sign + printer.Sprintf("%d", int64(math.Round(v)))
}

func display(kind Kind, v *float64) string {
	if v == nil {
		return placeholder
	}
	switch kind {
	case KindPercent:
		return fmt.Sprintf("%.2f%%", *v)
	case KindRank:
		return "#" + printer.Sprintf("%d", int64(math.Round(*v)))
	default:
		return printer.Sprintf("%d", int64(math.Round(*v)))
	}
}
