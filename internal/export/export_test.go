package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/dataset"
)

var rawHeader = strings.Join([]string{
	"Date", "Heure", "Periode", "Lien", "Titre", "Type", "Durée (Reels)",
	"Nb Image (Carrousel)", "Contenue", "Collaboration", "Vues", "Vues Followers",
	"Vues Non Followers", "Nb Interaction", "Likes", "Commentaires", "Partage",
	"Enregistrement", "Activté du Profil", "Visites du profil", "Followers en plus",
	"Appuis sur des liens externes", "Hashtags",
}, ";")

const sampleRows = `2024-03-01;14:30;Printemps;https://instagram.com/p/a;Calanques;Reels;1.30;;Paysage;Non;1000;300;700;;100;10;5;5;;30;10;10;3
2024-03-05;9;Printemps;https://instagram.com/p/b;Kayak;Photo;;;Sport;Oui;250,5;100;150;40;30;5;2;3;60;40;15;5;2
;;;;Sans date;Story;;;;;;;;;;;;;;;;;`

func loadSample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(rawHeader + "\n" + sampleRows))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	return ds
}

func TestWriteDatasetFormat(t *testing.T) {
	ds := loadSample(t)
	var buf bytes.Buffer
	if err := WriteDataset(&buf, ds); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("export must start with a UTF-8 BOM")
	}
	text := string(out[3:])
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date;Heure;Periode;") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[0], "Taux d'Engagement") || !strings.Contains(lines[0], "% Non-Followers") {
		t.Fatalf("derived display labels missing from header: %q", lines[0])
	}
	// First row: collab Non, engagement 12%, 70% non-followers.
	if !strings.Contains(lines[1], ";Non;") {
		t.Fatalf("collab should render Oui/Non: %q", lines[1])
	}
	if !strings.Contains(lines[1], ";12;") {
		t.Fatalf("engagement should be on the 0-100 scale: %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ";70") {
		t.Fatalf("pct non-followers should close the row at 70: %q", lines[1])
	}
	// Second row: reported interactions 40/250.5 → 15.97.
	if !strings.Contains(lines[2], ";Oui;") || !strings.Contains(lines[2], ";15.97;") {
		t.Fatalf("row 2 = %q", lines[2])
	}
	// Undated row keeps empty date and rate cells.
	if !strings.HasPrefix(lines[3], ";;") {
		t.Fatalf("undated row = %q", lines[3])
	}
}

func TestRoundTrip(t *testing.T) {
	first := loadSample(t)
	var buf bytes.Buffer
	if err := WriteDataset(&buf, first); err != nil {
		t.Fatalf("write: %v", err)
	}
	second, err := dataset.Read(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if second.Len() != first.Len() {
		t.Fatalf("row count changed: %d -> %d", first.Len(), second.Len())
	}
	for i := range first.Posts {
		a, b := &first.Posts[i], &second.Posts[i]
		checkValue(t, i, "taux_engagement", a.TauxEngagement, b.TauxEngagement)
		checkValue(t, i, "taux_attraction", a.TauxAttraction, b.TauxAttraction)
		checkValue(t, i, "pct_non_followers", a.PctNonFollowers, b.PctNonFollowers)
		checkValue(t, i, "nb_interactions_calc", a.NbInteractionsCalc, b.NbInteractionsCalc)
		checkValue(t, i, "vues", a.Vues, b.Vues)
		if a.HeureBin != b.HeureBin {
			t.Errorf("row %d: heure_bin %q -> %q", i, a.HeureBin, b.HeureBin)
		}
		if a.Collab != b.Collab || a.Hashtags != b.Hashtags {
			t.Errorf("row %d: collab/hashtags changed", i)
		}
		if a.HasDate != b.HasDate || (a.HasDate && !a.Date.Equal(b.Date)) {
			t.Errorf("row %d: date changed", i)
		}
	}
}

func checkValue(t *testing.T, row int, name string, a, b dataset.Value) {
	t.Helper()
	if a.Valid != b.Valid {
		t.Errorf("row %d: %s validity %v -> %v", row, name, a.Valid, b.Valid)
		return
	}
	if a.Valid && math.Abs(a.F-b.F) > 1e-9 {
		t.Errorf("row %d: %s %v -> %v", row, name, a.F, b.F)
	}
}

func TestWriteSegmentsTable(t *testing.T) {
	rows := []aggregate.SegmentRow{
		{Segment: "Reels × Paysage", Metric: "vues", Value: 123.5, Count: 2},
	}
	var buf bytes.Buffer
	if err := WriteSegments(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := string(bytes.TrimPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	if !strings.HasPrefix(text, "Segment;Métrique;Valeur;Posts\n") {
		t.Fatalf("header = %q", text)
	}
	if !strings.Contains(text, "Reels × Paysage;vues;123.5;2") {
		t.Fatalf("row missing: %q", text)
	}
}

func TestWriteSeriesTable(t *testing.T) {
	points := []aggregate.Point{{Period: "2024-03", Metric: "vues", Value: 150, Count: 2}}
	var buf bytes.Buffer
	if err := WriteSeries(&buf, points); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "2024-03;vues;150;2") {
		t.Fatalf("row missing: %q", buf.String())
	}
}
