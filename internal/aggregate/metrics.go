// Package aggregate provides the grouping primitives consumed by the
// presentation layer: time-bucketed series, categorical segments, reel
// duration statistics and a day/hour heatmap. One parameterized function per
// shape, driven by a named metric registry.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/moelabs/instalytics/internal/dataset"
)

// Mode selects the aggregation applied within each group.
type Mode string

const (
	Sum  Mode = "somme"
	Mean Mode = "moyenne"
)

// ParseMode accepts the French labels used on the CLI and API.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Sum, Mean:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown aggregation %q (use %q or %q)", s, Sum, Mean)
	}
}

// metricFns maps canonical metric names to their accessor.
var metricFns = map[string]func(*dataset.Post) dataset.Value{
	"vues":                 func(p *dataset.Post) dataset.Value { return p.Vues },
	"vues_followers":       func(p *dataset.Post) dataset.Value { return p.VuesFollowers },
	"vues_non_followers":   func(p *dataset.Post) dataset.Value { return p.VuesNonFollowers },
	"nb_interactions":      func(p *dataset.Post) dataset.Value { return p.NbInteractions },
	"nb_interactions_calc": func(p *dataset.Post) dataset.Value { return p.NbInteractionsCalc },
	"likes":                func(p *dataset.Post) dataset.Value { return p.Likes },
	"commentaires":         func(p *dataset.Post) dataset.Value { return p.Commentaires },
	"partages":             func(p *dataset.Post) dataset.Value { return p.Partages },
	"enregistrements":      func(p *dataset.Post) dataset.Value { return p.Enregistrements },
	"activite_profil":      func(p *dataset.Post) dataset.Value { return p.ActiviteProfil },
	"activite_profil_calc": func(p *dataset.Post) dataset.Value { return p.ActiviteProfilCalc },
	"visites_profil":       func(p *dataset.Post) dataset.Value { return p.VisitesProfil },
	"followers_plus":       func(p *dataset.Post) dataset.Value { return p.FollowersPlus },
	"clics_externes":       func(p *dataset.Post) dataset.Value { return p.ClicsExternes },
	"hashtags":             func(p *dataset.Post) dataset.Value { return dataset.Num(float64(p.Hashtags)) },
	"taux_engagement":      func(p *dataset.Post) dataset.Value { return p.TauxEngagement },
	"taux_attraction":      func(p *dataset.Post) dataset.Value { return p.TauxAttraction },
	"profile_visit_rate":   func(p *dataset.Post) dataset.Value { return p.ProfileVisitRate },
	"follow_rate":          func(p *dataset.Post) dataset.Value { return p.FollowRate },
	"external_ctr":         func(p *dataset.Post) dataset.Value { return p.ExternalCTR },
	"pct_non_followers":    func(p *dataset.Post) dataset.Value { return p.PctNonFollowers },
}

// MetricNames lists every registered metric, sorted.
func MetricNames() []string {
	names := make([]string, 0, len(metricFns))
	for n := range metricFns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func metricFn(name string) (func(*dataset.Post) dataset.Value, error) {
	fn, ok := metricFns[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}
	return fn, nil
}

// MetricMean averages a metric over the dataset, ignoring null cells. Null
// when no cell is defined.
func MetricMean(ds *dataset.Dataset, metric string) (dataset.Value, error) {
	fn, err := metricFn(metric)
	if err != nil {
		return dataset.Value{}, err
	}
	var sum float64
	var n int
	for i := range ds.Posts {
		if v := fn(&ds.Posts[i]); v.Valid {
			sum += v.F
			n++
		}
	}
	if n == 0 {
		return dataset.Value{}, nil
	}
	return dataset.Num(sum / float64(n)), nil
}

// MetricSum totals a metric over the dataset, ignoring null cells.
func MetricSum(ds *dataset.Dataset, metric string) (dataset.Value, error) {
	fn, err := metricFn(metric)
	if err != nil {
		return dataset.Value{}, err
	}
	var sum float64
	for i := range ds.Posts {
		if v := fn(&ds.Posts[i]); v.Valid {
			sum += v.F
		}
	}
	return dataset.Num(sum), nil
}

// MetricMedian returns the median of a metric's non-null cells, null when
// none are defined.
func MetricMedian(ds *dataset.Dataset, metric string) (dataset.Value, error) {
	fn, err := metricFn(metric)
	if err != nil {
		return dataset.Value{}, err
	}
	var vals []float64
	for i := range ds.Posts {
		if v := fn(&ds.Posts[i]); v.Valid {
			vals = append(vals, v.F)
		}
	}
	if len(vals) == 0 {
		return dataset.Value{}, nil
	}
	return dataset.Num(median(vals)), nil
}

// median sorts its argument in place.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
