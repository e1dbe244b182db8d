package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/moelabs/instalytics/internal/dataset"
)

func day(s string) time.Time {
	t, err := time.Parse(dataset.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func testData() *dataset.Dataset {
	return &dataset.Dataset{Posts: []dataset.Post{
		{Titre: "Calanques au lever du soleil", Type: dataset.TypeReels, Date: day("2024-03-01"), HasDate: true, Periode: "Printemps", Contenu: "Paysage", Hashtags: 3, HeureBin: dataset.BucketApresMidi},
		{Titre: "Kayak à Sormiou", Type: dataset.TypePhoto, Date: day("2024-03-05"), HasDate: true, Periode: "Printemps", Contenu: "Sport", Collab: true, Hashtags: 2, HeureBin: dataset.BucketMatin},
		{Titre: "Randonnée Sainte-Victoire", Type: dataset.TypeCarousel, Date: day("2024-04-10"), HasDate: true, Periode: "Été", Contenu: "Paysage", Hashtags: 0, HeureBin: dataset.BucketSoir},
		{Titre: "Story sans date", Type: "Story", Periode: "Été", Contenu: "Sport", Hashtags: 1},
	}}
}

func titles(ds *dataset.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for i := range ds.Posts {
		out = append(out, ds.Posts[i].Titre)
	}
	return out
}

func TestInactiveFilterKeepsEverything(t *testing.T) {
	ds := testData()
	got := Filter{}.Apply(ds)
	if got.Len() != ds.Len() {
		t.Fatalf("empty filter kept %d of %d rows", got.Len(), ds.Len())
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	ds := testData()
	before := ds.Len()
	sub := Filter{Periode: "Printemps"}.Apply(ds)
	sub.Posts[0].Titre = "changed"
	if ds.Len() != before || ds.Posts[0].Titre != "Calanques au lever du soleil" {
		t.Fatal("Apply must not alias or mutate the base dataset")
	}
}

func TestIdempotence(t *testing.T) {
	ds := testData()
	f := Filter{Periode: "Printemps", Hashtags: &Range{Min: 0, Max: 3}}
	once := f.Apply(ds)
	twice := f.Apply(once)
	if !reflect.DeepEqual(titles(once), titles(twice)) {
		t.Fatalf("filter not idempotent: %v vs %v", titles(once), titles(twice))
	}
}

func TestConjunctionIsIntersection(t *testing.T) {
	ds := testData()
	d := Filter{From: dayPtr("2024-03-01"), To: dayPtr("2024-03-31")}
	c := Filter{Contenu: "Paysage"}
	both := Filter{From: d.From, To: d.To, Contenu: "Paysage"}

	inBoth := map[string]bool{}
	for _, title := range titles(d.Apply(ds)) {
		inBoth[title] = true
	}
	var intersection []string
	for _, title := range titles(c.Apply(ds)) {
		if inBoth[title] {
			intersection = append(intersection, title)
		}
	}
	if !reflect.DeepEqual(titles(both.Apply(ds)), intersection) {
		t.Fatalf("conjunction %v != intersection %v", titles(both.Apply(ds)), intersection)
	}
}

func TestHashtagBoundaries(t *testing.T) {
	ds := &dataset.Dataset{Posts: []dataset.Post{{Titre: "t", Hashtags: 3}}}
	if got := (Filter{Hashtags: &Range{Min: 0, Max: 3}}).Apply(ds); got.Len() != 1 {
		t.Fatal("range [0,3] must include hashtag_count 3")
	}
	if got := (Filter{Hashtags: &Range{Min: 0, Max: 2}}).Apply(ds); got.Len() != 0 {
		t.Fatal("range [0,2] must exclude hashtag_count 3")
	}
}

func TestDateRangeExcludesUndatedRows(t *testing.T) {
	ds := testData()
	got := Filter{From: dayPtr("2024-01-01"), To: dayPtr("2024-12-31")}.Apply(ds)
	for _, title := range titles(got) {
		if title == "Story sans date" {
			t.Fatal("rows without a date must be outside date-ranged views")
		}
	}
	if got.Len() != 3 {
		t.Fatalf("kept %d rows, want 3", got.Len())
	}
}

func TestCollabTriState(t *testing.T) {
	ds := testData()
	yes := true
	if got := (Filter{Collab: &yes}).Apply(ds); got.Len() != 1 || got.Posts[0].Titre != "Kayak à Sormiou" {
		t.Fatalf("collab=oui kept %v", titles(got))
	}
	no := false
	if got := (Filter{Collab: &no}).Apply(ds); got.Len() != 3 {
		t.Fatalf("collab=non kept %d rows, want 3", got.Len())
	}
}

func TestMomentFilter(t *testing.T) {
	ds := testData()
	got := Filter{Moment: dataset.BucketMatin}.Apply(ds)
	if got.Len() != 1 || got.Posts[0].Titre != "Kayak à Sormiou" {
		t.Fatalf("moment filter kept %v", titles(got))
	}
}

func TestSearch(t *testing.T) {
	ds := testData()
	cases := []struct {
		name string
		s    Search
		want []string
	}{
		{"case-insensitive substring", Search{Query: "kayak"}, []string{"Kayak à Sormiou"}},
		{"type multi-select", Search{Types: []string{dataset.TypeReels, dataset.TypePhoto}}, []string{"Calanques au lever du soleil", "Kayak à Sormiou"}},
		{"empty selection means all", Search{}, titles(ds)},
		{"own date range", Search{From: dayPtr("2024-04-01"), To: dayPtr("2024-04-30")}, []string{"Randonnée Sainte-Victoire"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := titles(tc.s.Apply(ds))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearchNullTitleNeverMatches(t *testing.T) {
	ds := &dataset.Dataset{Posts: []dataset.Post{{Titre: ""}}}
	if got := (Search{Query: "anything"}).Apply(ds); got.Len() != 0 {
		t.Fatal("absent titles must never match a search term")
	}
}

func TestPerTypeSubsetsFromFilteredSet(t *testing.T) {
	ds := testData()
	filtered := Filter{Periode: "Printemps"}.Apply(ds)
	if got := Reels(filtered); got.Len() != 1 {
		t.Fatalf("reels subset = %d, want 1", got.Len())
	}
	if got := Photos(filtered); got.Len() != 1 {
		t.Fatalf("photos subset = %d, want 1", got.Len())
	}
	if got := Carousels(filtered); got.Len() != 0 {
		t.Fatalf("carousel subset = %d, want 0 (filtered out)", got.Len())
	}
	// The unrecognized "Story" type belongs to no subset but stays in the base.
	all := Filter{}.Apply(ds)
	if Reels(all).Len()+Photos(all).Len()+Carousels(all).Len() == all.Len() {
		t.Fatal("expected the Story row outside every per-type subset")
	}
}
