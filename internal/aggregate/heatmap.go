package aggregate

import (
	"sort"

	"github.com/moelabs/instalytics/internal/dataset"
)

// HeatmapCell is the median of a metric for one (weekday, hour) slot.
type HeatmapCell struct {
	Jour  string  `json:"jour"` // Lun..Dim
	Hour  int     `json:"hour"` // 0..23
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Heatmap computes the per-(weekday, hour) median of a metric. Rows lacking
// a date, a parseable hour or a metric value are skipped. Cells come back
// ordered Monday-first, then by hour.
func Heatmap(ds *dataset.Dataset, metric string) ([]HeatmapCell, error) {
	fn, err := metricFn(metric)
	if err != nil {
		return nil, err
	}
	type key struct {
		day  int // Monday-first index
		hour int
	}
	groups := make(map[key][]float64)
	for i := range ds.Posts {
		p := &ds.Posts[i]
		if !p.HasDate {
			continue
		}
		h, _, ok := dataset.ParseClock(p.Heure)
		if !ok {
			continue
		}
		v := fn(p)
		if !v.Valid {
			continue
		}
		day := (int(p.Date.Weekday()) + 6) % 7
		k := key{day: day, hour: h}
		groups[k] = append(groups[k], v.F)
	}

	cells := make([]HeatmapCell, 0, len(groups))
	for k, vals := range groups {
		cells = append(cells, HeatmapCell{
			Jour:  dataset.DayNames[k.day],
			Hour:  k.hour,
			Value: median(vals),
			Count: len(vals),
		})
	}
	dayIndex := make(map[string]int, len(dataset.DayNames))
	for i, n := range dataset.DayNames {
		dayIndex[n] = i
	}
	sort.Slice(cells, func(i, j int) bool {
		if dayIndex[cells[i].Jour] != dayIndex[cells[j].Jour] {
			return dayIndex[cells[i].Jour] < dayIndex[cells[j].Jour]
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells, nil
}
