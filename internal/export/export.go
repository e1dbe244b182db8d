// Package export serializes datasets and aggregation results as
// ';'-delimited UTF-8 CSV with a BOM, the format the downstream tooling and
// spreadsheets expect.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/dataset"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

type column struct {
	header string
	cell   func(*dataset.Post) string
}

// Raw columns keep their original export labels so that re-ingesting an
// exported file reproduces the same dataset; derived columns carry display
// labels and are ignored on re-ingest.
var datasetColumns = []column{
	{"Date", func(p *dataset.Post) string {
		if !p.HasDate {
			return ""
		}
		return p.Date.Format(dataset.DateLayout)
	}},
	{"Heure", func(p *dataset.Post) string { return p.Heure }},
	{"Periode", func(p *dataset.Post) string { return p.Periode }},
	{"Lien", func(p *dataset.Post) string { return p.Lien }},
	{"Titre", func(p *dataset.Post) string { return p.Titre }},
	{"Type", func(p *dataset.Post) string { return p.Type }},
	{"Durée (Reels)", func(p *dataset.Post) string { return p.DureeReels }},
	{"Nb Image (Carrousel)", func(p *dataset.Post) string { return dataset.FormatNumber(p.NbImagesCarousel) }},
	{"Contenue", func(p *dataset.Post) string { return p.Contenu }},
	{"Collaboration", func(p *dataset.Post) string { return ouiNon(p.Collab) }},
	{"Vues", func(p *dataset.Post) string { return dataset.FormatNumber(p.Vues) }},
	{"Vues Followers", func(p *dataset.Post) string { return dataset.FormatNumber(p.VuesFollowers) }},
	{"Vues Non Followers", func(p *dataset.Post) string { return dataset.FormatNumber(p.VuesNonFollowers) }},
	{"Nb Interaction", func(p *dataset.Post) string { return dataset.FormatNumber(p.NbInteractions) }},
	{"Likes", func(p *dataset.Post) string { return dataset.FormatNumber(p.Likes) }},
	{"Commentaires", func(p *dataset.Post) string { return dataset.FormatNumber(p.Commentaires) }},
	{"Partage", func(p *dataset.Post) string { return dataset.FormatNumber(p.Partages) }},
	{"Enregistrement", func(p *dataset.Post) string { return dataset.FormatNumber(p.Enregistrements) }},
	{"Activté du Profil", func(p *dataset.Post) string { return dataset.FormatNumber(p.ActiviteProfil) }},
	{"Visites du profil", func(p *dataset.Post) string { return dataset.FormatNumber(p.VisitesProfil) }},
	{"Followers en plus", func(p *dataset.Post) string { return dataset.FormatNumber(p.FollowersPlus) }},
	{"Appuis sur des liens externes", func(p *dataset.Post) string { return dataset.FormatNumber(p.ClicsExternes) }},
	{"Hashtags", func(p *dataset.Post) string { return strconv.Itoa(p.Hashtags) }},
	{"Jour de la Semaine", func(p *dataset.Post) string { return p.JourSemaine }},
	{"Semaine ISO", func(p *dataset.Post) string { return intOrEmpty(p.Semaine) }},
	{"Mois", func(p *dataset.Post) string { return intOrEmpty(p.Mois) }},
	{"Période de la Journée", func(p *dataset.Post) string { return string(p.HeureBin) }},
	{"Interactions Calculées", func(p *dataset.Post) string { return dataset.FormatNumber(p.NbInteractionsCalc) }},
	{"Activité Profil Calculée", func(p *dataset.Post) string { return dataset.FormatNumber(p.ActiviteProfilCalc) }},
	{"Taux d'Engagement", func(p *dataset.Post) string { return percent(p.TauxEngagement) }},
	{"Taux d'Attraction", func(p *dataset.Post) string { return percent(p.TauxAttraction) }},
	{"Taux de Visite Profil", func(p *dataset.Post) string { return percent(p.ProfileVisitRate) }},
	{"Taux de Follow", func(p *dataset.Post) string { return percent(p.FollowRate) }},
	{"Taux de Clic Externe", func(p *dataset.Post) string { return percent(p.ExternalCTR) }},
	{"% Non-Followers", func(p *dataset.Post) string { return percent(p.PctNonFollowers) }},
}

// WriteDataset writes the full dataset, raw and derived columns included.
func WriteDataset(w io.Writer, ds *dataset.Dataset) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = dataset.Delimiter

	header := make([]string, len(datasetColumns))
	for i, c := range datasetColumns {
		header[i] = c.header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(datasetColumns))
	for i := range ds.Posts {
		for j, c := range datasetColumns {
			rec[j] = c.cell(&ds.Posts[i])
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeries writes a time series as a flat (period, metric, value, count)
// table.
func WriteSeries(w io.Writer, points []aggregate.Point) error {
	return writeTable(w, []string{"Période", "Métrique", "Valeur", "Posts"}, len(points), func(i int) []string {
		p := points[i]
		return []string{p.Period, p.Metric, formatFloat(p.Value), strconv.Itoa(p.Count)}
	})
}

// WriteSegments writes a categorical aggregation as a flat table.
func WriteSegments(w io.Writer, rows []aggregate.SegmentRow) error {
	return writeTable(w, []string{"Segment", "Métrique", "Valeur", "Posts"}, len(rows), func(i int) []string {
		r := rows[i]
		return []string{r.Segment, r.Metric, formatFloat(r.Value), strconv.Itoa(r.Count)}
	})
}

func writeTable(w io.Writer, header []string, n int, row func(int) []string) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = dataset.Delimiter
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

func intOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// percent renders a 0-1 rate on the 0-100 scale, rounded to 2 decimals,
// empty when null.
func percent(v dataset.Value) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(math.Round(v.F*10000) / 100)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
