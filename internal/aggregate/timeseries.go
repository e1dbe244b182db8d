package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/moelabs/instalytics/internal/dataset"
)

// Resolution is the time-series grouping granularity.
type Resolution string

const (
	ByDay   Resolution = "jour"
	ByWeek  Resolution = "semaine"
	ByMonth Resolution = "mois"
)

// ParseResolution accepts the French labels used on the CLI and API.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(s) {
	case ByDay, ByWeek, ByMonth:
		return Resolution(s), nil
	default:
		return "", fmt.Errorf("unknown resolution %q (use %q, %q or %q)", s, ByDay, ByWeek, ByMonth)
	}
}

// Point is one (period, metric, value) triple of a time series.
type Point struct {
	Period string  `json:"period"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
}

// TimeSeries groups the dataset's dated rows by day, ISO week (floored to the
// preceding Monday) or calendar month, and applies mode to each requested
// metric per group. Points come back ordered by period then metric. Rows
// without a date, and null metric cells, are left out; a mean over an empty
// group produces no point.
func TimeSeries(ds *dataset.Dataset, metrics []string, res Resolution, mode Mode) ([]Point, error) {
	if len(metrics) == 0 {
		return nil, fmt.Errorf("at least one metric is required")
	}
	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]map[string]*acc) // period -> metric -> acc
	for _, metric := range metrics {
		fn, err := metricFn(metric)
		if err != nil {
			return nil, err
		}
		for i := range ds.Posts {
			p := &ds.Posts[i]
			if !p.HasDate {
				continue
			}
			v := fn(p)
			if !v.Valid {
				continue
			}
			period := periodLabel(p.Date, res)
			byMetric := groups[period]
			if byMetric == nil {
				byMetric = make(map[string]*acc)
				groups[period] = byMetric
			}
			a := byMetric[metric]
			if a == nil {
				a = &acc{}
				byMetric[metric] = a
			}
			a.sum += v.F
			a.n++
		}
	}

	var points []Point
	for period, byMetric := range groups {
		for metric, a := range byMetric {
			val := a.sum
			if mode == Mean {
				val = a.sum / float64(a.n)
			}
			points = append(points, Point{Period: period, Metric: metric, Value: val, Count: a.n})
		}
	}
	// Period labels are zero-padded, so lexicographic order is period order.
	sort.Slice(points, func(i, j int) bool {
		if points[i].Period != points[j].Period {
			return points[i].Period < points[j].Period
		}
		return points[i].Metric < points[j].Metric
	})
	return points, nil
}

func periodLabel(d time.Time, res Resolution) string {
	switch res {
	case ByWeek:
		monday := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
		return monday.Format(dataset.DateLayout)
	case ByMonth:
		return d.Format("2006-01")
	default:
		return d.Format(dataset.DateLayout)
	}
}
