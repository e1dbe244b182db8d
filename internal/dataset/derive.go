package dataset

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the strict calendar format of the source export.
const DateLayout = "2006-01-02"

// derive fills every computed field of p from its raw fields. Each derived
// value depends only on the row itself, so derivation order across rows does
// not matter.
func derive(p *Post) {
	deriveCalendar(p)
	deriveKPIs(p)
}

func deriveCalendar(p *Post) {
	p.Timestamp = p.Date
	if h, m, ok := ParseClock(p.Heure); ok && p.HasDate {
		p.Timestamp = time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), h, m, 0, 0, p.Date.Location())
	}

	if p.HasDate {
		p.JourSemaine = DayNames[mondayIndex(p.Date.Weekday())]
		_, p.Semaine = p.Date.ISOWeek()
		p.Mois = int(p.Date.Month())
	}

	if h, _, ok := ParseClock(p.Heure); ok {
		p.HeureBin = bucketFor(h)
	}
}

func deriveKPIs(p *Post) {
	p.NbInteractionsCalc = Num(p.Likes.OrZero() + p.Commentaires.OrZero() + p.Enregistrements.OrZero() + p.Partages.OrZero())
	p.TauxEngagement = rateChain(
		ratio{p.NbInteractions, p.Vues},
		ratio{p.NbInteractionsCalc, p.Vues},
	)

	p.ActiviteProfilCalc = Num(p.VisitesProfil.OrZero() + p.FollowersPlus.OrZero() + p.ClicsExternes.OrZero())
	p.TauxAttraction = rateChain(
		ratio{p.ActiviteProfil, p.Vues},
		ratio{p.ActiviteProfilCalc, p.Vues},
	)

	p.ProfileVisitRate = p.VisitesProfil.Div(p.Vues)
	p.FollowRate = p.FollowersPlus.Div(p.Vues)
	p.ExternalCTR = p.ClicsExternes.Div(p.Vues)

	followerViews := p.VuesFollowers.OrZero() + p.VuesNonFollowers.OrZero()
	p.PctNonFollowers = Num(p.VuesNonFollowers.OrZero()).Div(Num(followerViews))
}

// ParseClock interprets a time-of-day cell as either "H:MM" or a bare number
// meaning a whole hour. Out-of-range or malformed values report !ok; callers
// absorb that silently.
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	if before, after, found := strings.Cut(s, ":"); found {
		h, err1 := strconv.Atoi(strings.TrimSpace(before))
		m, err2 := strconv.Atoi(strings.TrimSpace(after))
		if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			return 0, 0, false
		}
		return h, m, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, false
	}
	h := int(f)
	if h < 0 || h > 23 {
		return 0, 0, false
	}
	return h, 0, true
}

func bucketFor(hour int) TimeBucket {
	switch {
	case hour <= 5:
		return BucketNuit
	case hour <= 9:
		return BucketMatin
	case hour <= 13:
		return BucketMidi
	case hour <= 17:
		return BucketApresMidi
	case hour <= 21:
		return BucketSoir
	default:
		return BucketTard
	}
}

// mondayIndex converts time.Weekday (Sunday=0) to the Monday-first index
// used by DayNames.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
