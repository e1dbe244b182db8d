package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moelabs/instalytics/internal/dataset"
)

// segmentFns maps categorical column names to their accessor. An empty
// result excludes the row from the grouping.
var segmentFns = map[string]func(*dataset.Post) string{
	"type":         func(p *dataset.Post) string { return p.Type },
	"contenu":      func(p *dataset.Post) string { return p.Contenu },
	"periode":      func(p *dataset.Post) string { return p.Periode },
	"jour_semaine": func(p *dataset.Post) string { return p.JourSemaine },
	"heure_bin":    func(p *dataset.Post) string { return string(p.HeureBin) },
	"collab": func(p *dataset.Post) string {
		if p.Collab {
			return "Oui"
		}
		return "Non"
	},
}

// SegmentNames lists every groupable categorical column, sorted.
func SegmentNames() []string {
	names := make([]string, 0, len(segmentFns))
	for n := range segmentFns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SegmentRow is one group of a categorical aggregation.
type SegmentRow struct {
	Segment string  `json:"segment"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Count   int     `json:"count"`
}

// Segments groups by one categorical column, or by the composite of two
// (labels joined with " × "), applies mode to the metric and sorts groups
// descending by aggregated value. Rows whose segment value is empty, and
// null metric cells, are excluded.
func Segments(ds *dataset.Dataset, groupBy []string, metric string, mode Mode) ([]SegmentRow, error) {
	if len(groupBy) == 0 || len(groupBy) > 2 {
		return nil, fmt.Errorf("group by one or two columns, got %d", len(groupBy))
	}
	fns := make([]func(*dataset.Post) string, len(groupBy))
	for i, col := range groupBy {
		fn, ok := segmentFns[col]
		if !ok {
			return nil, fmt.Errorf("unknown segment column %q", col)
		}
		fns[i] = fn
	}
	mfn, err := metricFn(metric)
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for i := range ds.Posts {
		p := &ds.Posts[i]
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			parts = append(parts, fn(p))
		}
		if hasEmpty(parts) {
			continue
		}
		v := mfn(p)
		if !v.Valid {
			continue
		}
		key := strings.Join(parts, " × ")
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.sum += v.F
		a.n++
	}

	rows := make([]SegmentRow, 0, len(groups))
	for key, a := range groups {
		val := a.sum
		if mode == Mean {
			val = a.sum / float64(a.n)
		}
		rows = append(rows, SegmentRow{Segment: key, Metric: metric, Value: val, Count: a.n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Segment < rows[j].Segment
	})
	return rows, nil
}

func hasEmpty(parts []string) bool {
	for _, s := range parts {
		if s == "" {
			return true
		}
	}
	return false
}
