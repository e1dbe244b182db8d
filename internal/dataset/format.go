package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCount renders a large number the way the dashboard displays it:
// 1.2M, 3.4k, or space-grouped thousands below that. Null renders empty.
func FormatCount(v Value) string {
	if !v.Valid {
		return ""
	}
	x := v.F
	switch {
	case x >= 1_000_000:
		return fmt.Sprintf("%.1fM", x/1_000_000)
	case x >= 1_000:
		return fmt.Sprintf("%.1fk", x/1_000)
	default:
		return groupThousands(fmt.Sprintf("%.0f", x))
	}
}

// FormatRate renders a 0-1 rate as a percentage with one decimal, empty when
// null.
func FormatRate(v Value) string {
	if !v.Valid {
		return ""
	}
	return fmt.Sprintf("%.1f%%", v.F*100)
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// FormatNumber renders a plain numeric cell without trailing zeros, the form
// the export writes and the ingest reads back.
func FormatNumber(v Value) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.F, 'f', -1, 64)
}
