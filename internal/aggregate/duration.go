package aggregate

import (
	"strconv"
	"strings"

	"github.com/moelabs/instalytics/internal/dataset"
)

// ReelDurationSeconds interprets the ambiguous raw Reel duration text:
// "m.s" and "m:s" are minutes plus seconds, a bare number is whole minutes.
// Unparseable or empty input reports !ok.
func ReelDurationSeconds(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if sep := durationSeparator(raw); sep != 0 {
		before, after, _ := strings.Cut(raw, string(sep))
		minutes, err1 := strconv.ParseFloat(before, 64)
		seconds, err2 := strconv.ParseFloat(after, 64)
		if err1 != nil || err2 != nil || minutes < 0 || seconds < 0 {
			return 0, false
		}
		return minutes*60 + seconds, true
	}
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil || minutes < 0 {
		return 0, false
	}
	return minutes * 60, true
}

// The period form wins over the colon form, matching how mixed exports were
// produced.
func durationSeparator(raw string) byte {
	if strings.Contains(raw, ".") {
		return '.'
	}
	if strings.Contains(raw, ":") {
		return ':'
	}
	return 0
}

// DurationStats summarizes Reel durations over a dataset. Rows whose raw
// duration does not parse are ignored entirely: they affect neither the
// averages nor the threshold shares.
type DurationStats struct {
	Count     int     `json:"count"`      // reels with a usable duration
	Mean      float64 `json:"mean_sec"`   // seconds
	Median    float64 `json:"median_sec"` // seconds
	Over60    int     `json:"over_60"`    // reels longer than a minute
	PctOver60 float64 `json:"pct_over_60"`
}

// ReelDurations computes duration statistics over ds, which is normally the
// Reels-only subset of the currently filtered dataset.
func ReelDurations(ds *dataset.Dataset) DurationStats {
	var secs []float64
	for i := range ds.Posts {
		if s, ok := ReelDurationSeconds(ds.Posts[i].DureeReels); ok {
			secs = append(secs, s)
		}
	}
	st := DurationStats{Count: len(secs)}
	if len(secs) == 0 {
		return st
	}
	var sum float64
	for _, s := range secs {
		sum += s
		if s > 60 {
			st.Over60++
		}
	}
	st.Mean = sum / float64(len(secs))
	st.Median = median(secs)
	st.PctOver60 = float64(st.Over60) / float64(len(secs)) * 100
	return st
}
