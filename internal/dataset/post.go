package dataset

import "time"

// Post type labels as they appear in the raw export.
const (
	TypeReels    = "Reels"
	TypePhoto    = "Photo"
	TypeCarousel = "Carrousel"
)

// TimeBucket is the coarse time-of-day segment derived from the publication
// hour. An empty bucket means the hour could not be determined.
type TimeBucket string

const (
	BucketNuit      TimeBucket = "Nuit"       // 0-5
	BucketMatin     TimeBucket = "Matin"      // 6-9
	BucketMidi      TimeBucket = "Midi"       // 10-13
	BucketApresMidi TimeBucket = "Après-midi" // 14-17
	BucketSoir      TimeBucket = "Soir"       // 18-21
	BucketTard      TimeBucket = "Tard"       // 22-23
)

// Buckets lists the six segments in day order.
var Buckets = []TimeBucket{BucketNuit, BucketMatin, BucketMidi, BucketApresMidi, BucketSoir, BucketTard}

// DayNames maps Monday-first weekday indexes to the short French labels used
// across grouping and export.
var DayNames = []string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// Post is one normalized row of the source export plus every derived metric.
// Posts are value types; a Dataset is never mutated after construction.
type Post struct {
	Date      time.Time // calendar date, zero when unparseable
	HasDate   bool
	Heure     string    // raw time-of-day text ("14:30" or a bare hour)
	Timestamp time.Time // Date plus Heure when both parse, else Date at midnight

	Periode string
	Contenu string
	Titre   string
	Lien    string
	Type    string // trimmed raw type label

	IsReel     bool
	IsPhoto    bool
	IsCarousel bool
	Collab     bool
	Hashtags   int

	DureeReels       string // raw Reel duration text, interpreted lazily
	NbImagesCarousel Value

	// Raw counters. Each may be null when the cell was empty or malformed.
	Vues             Value
	VuesFollowers    Value
	VuesNonFollowers Value
	NbInteractions   Value
	Likes            Value
	Commentaires     Value
	Partages         Value
	Enregistrements  Value
	ActiviteProfil   Value
	VisitesProfil    Value
	FollowersPlus    Value
	ClicsExternes    Value

	// Derived once at load time.
	NbInteractionsCalc Value
	TauxEngagement     Value
	ActiviteProfilCalc Value
	TauxAttraction     Value
	ProfileVisitRate   Value
	FollowRate         Value
	ExternalCTR        Value
	PctNonFollowers    Value

	JourSemaine string // Lun..Dim, empty when Date is null
	Semaine     int    // ISO week number, 0 when Date is null
	Mois        int    // 1..12, 0 when Date is null
	HeureBin    TimeBucket
}

// Dataset is an immutable collection of normalized posts. Filtering and
// aggregation always allocate fresh datasets, so a loaded Dataset is safe for
// unsynchronized concurrent readers.
type Dataset struct {
	Posts []Post

	// MissingColumns lists canonical column names absent from the source
	// header, surfaced as a single aggregate warning.
	MissingColumns []string
}

// Len returns the number of posts.
func (d *Dataset) Len() int { return len(d.Posts) }

// TypeCounts tallies the three recognized post types.
func (d *Dataset) TypeCounts() (reels, photos, carousels int) {
	for i := range d.Posts {
		switch {
		case d.Posts[i].IsReel:
			reels++
		case d.Posts[i].IsPhoto:
			photos++
		case d.Posts[i].IsCarousel:
			carousels++
		}
	}
	return
}

// TypesConsistent reports whether every post fell into one of the three
// recognized types. A false result is informational: unrecognized types stay
// in the dataset, they just belong to no per-type subset.
func (d *Dataset) TypesConsistent() bool {
	r, p, c := d.TypeCounts()
	return r+p+c == len(d.Posts)
}
