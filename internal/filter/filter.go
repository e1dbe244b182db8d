// Package filter narrows a normalized dataset by composing independent
// predicates. Every operation is pure: the input dataset is never mutated
// and results are freshly allocated, so concurrent sessions never observe
// each other's selections.
package filter

import (
	"strings"
	"time"

	"github.com/moelabs/instalytics/internal/dataset"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min, Max int
}

// Filter holds the sidebar selections. A nil or zero field imposes no
// constraint; active fields are conjoined (AND).
type Filter struct {
	From     *time.Time // inclusive, date component only
	To       *time.Time // inclusive, date component only
	Periode  string
	Contenu  string
	Collab   *bool
	Hashtags *Range
	Moment   dataset.TimeBucket
}

// Apply returns the subset of ds matching every active selection.
func (f Filter) Apply(ds *dataset.Dataset) *dataset.Dataset {
	out := &dataset.Dataset{MissingColumns: ds.MissingColumns}
	for i := range ds.Posts {
		if f.Match(&ds.Posts[i]) {
			out.Posts = append(out.Posts, ds.Posts[i])
		}
	}
	return out
}

// Match reports whether a single post passes the filter.
func (f Filter) Match(p *dataset.Post) bool {
	if f.From != nil || f.To != nil {
		// Rows without a parseable date are outside any date-ranged view.
		if !p.HasDate {
			return false
		}
		if f.From != nil && p.Date.Before(dateOnly(*f.From)) {
			return false
		}
		if f.To != nil && p.Date.After(dateOnly(*f.To)) {
			return false
		}
	}
	if f.Periode != "" && p.Periode != f.Periode {
		return false
	}
	if f.Contenu != "" && p.Contenu != f.Contenu {
		return false
	}
	if f.Collab != nil && p.Collab != *f.Collab {
		return false
	}
	if f.Hashtags != nil && (p.Hashtags < f.Hashtags.Min || p.Hashtags > f.Hashtags.Max) {
		return false
	}
	if f.Moment != "" && p.HeureBin != f.Moment {
		return false
	}
	return true
}

// Search is the record explorer's own predicate set: free-text title search,
// a post-type multi-select and an independent date range. It composes as one
// more AND-ed predicate over an already filtered dataset.
type Search struct {
	Types []string
	From  *time.Time
	To    *time.Time
	Query string
}

// Apply returns the posts matching the search.
func (s Search) Apply(ds *dataset.Dataset) *dataset.Dataset {
	out := &dataset.Dataset{MissingColumns: ds.MissingColumns}
	query := strings.ToLower(s.Query)
	for i := range ds.Posts {
		p := &ds.Posts[i]
		if len(s.Types) > 0 && !containsType(s.Types, p.Type) {
			continue
		}
		if s.From != nil || s.To != nil {
			if !p.HasDate {
				continue
			}
			if s.From != nil && p.Date.Before(dateOnly(*s.From)) {
				continue
			}
			if s.To != nil && p.Date.After(dateOnly(*s.To)) {
				continue
			}
		}
		if query != "" {
			// An absent title never matches a search term.
			if p.Titre == "" || !strings.Contains(strings.ToLower(p.Titre), query) {
				continue
			}
		}
		out.Posts = append(out.Posts, ds.Posts[i])
	}
	return out
}

// Reels returns the Reels-only view of ds. Per-type subsets are views over
// whatever dataset they are given, normally the currently filtered one.
func Reels(ds *dataset.Dataset) *dataset.Dataset { return byType(ds, dataset.TypeReels) }

// Photos returns the Photos-only view of ds.
func Photos(ds *dataset.Dataset) *dataset.Dataset { return byType(ds, dataset.TypePhoto) }

// Carousels returns the Carousels-only view of ds.
func Carousels(ds *dataset.Dataset) *dataset.Dataset { return byType(ds, dataset.TypeCarousel) }

func byType(ds *dataset.Dataset, t string) *dataset.Dataset {
	out := &dataset.Dataset{MissingColumns: ds.MissingColumns}
	for i := range ds.Posts {
		if ds.Posts[i].Type == t {
			out.Posts = append(out.Posts, ds.Posts[i])
		}
	}
	return out
}

func containsType(types []string, t string) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
