package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Delimiter used by the source export and by every CSV this tool emits.
const Delimiter = ';'

// columnMapping renames the raw French export headers to the canonical
// schema. Raw columns not listed here are ignored; canonical names with no
// matching raw column are reported via Dataset.MissingColumns.
var columnMapping = map[string]string{
	"Date":                          "date",
	"Heure":                         "heure",
	"Periode":                       "periode",
	"Lien":                          "lien",
	"Titre":                         "titre",
	"Type":                          "type",
	"Durée (Reels)":                 "duree_reels",
	"Nb Image (Carrousel)":          "nb_images_carousel",
	"Contenue":                      "contenu",
	"Collaboration":                 "collab",
	"Vues":                          "vues",
	"Vues Followers":                "vues_followers",
	"Vues Non Followers":            "vues_non_followers",
	"Nb Interaction":                "nb_interactions",
	"Likes":                         "likes",
	"Commentaires":                  "commentaires",
	"Partage":                       "partages",
	"Enregistrement":                "enregistrements",
	"Activté du Profil":             "activite_profil",
	"Visites du profil":             "visites_profil",
	"Followers en plus":             "followers_plus",
	"Appuis sur des liens externes": "clics_externes",
	"Hashtags":                      "hashtags",
}

// MissingFileError is returned when the source export does not exist. Its
// message carries the remediation steps shown to the user.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf(
		"data file not found: %s\n"+
			"To use this tool:\n"+
			"  1. Place the export file at the configured path\n"+
			"  2. Check that it is a CSV with ';' as separator\n"+
			"  3. Check that it contains the expected columns\n"+
			"No upload path is available, by choice.", e.Path)
}

// Load reads the source export at path and builds the normalized dataset.
// A missing file is fatal; a structurally unreadable file is fatal; anything
// at cell granularity degrades to a null field instead of failing.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a raw export from r. Exposed separately so the export
// round-trip can re-ingest in-memory data.
func Read(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	// Tolerate a UTF-8 BOM, which our own export also emits.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty data file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Index columns by canonical name.
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if canon, ok := columnMapping[strings.TrimSpace(h)]; ok {
			idx[canon] = i
		}
	}
	missing := missingColumns(idx)

	ds := &Dataset{MissingColumns: missing}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Posts)+1, err)
		}
		field := func(canon string) string {
			i, ok := idx[canon]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		// Concatenated exports sometimes repeat the header mid-file.
		if strings.Contains(field("date"), "Date") {
			continue
		}
		p := normalizeRow(field)
		derive(&p)
		ds.Posts = append(ds.Posts, p)
	}
	return ds, nil
}

func missingColumns(idx map[string]int) []string {
	var missing []string
	for _, canon := range columnMapping {
		if _, ok := idx[canon]; !ok {
			missing = append(missing, canon)
		}
	}
	sort.Strings(missing)
	return missing
}

// normalizeRow coerces one raw record into a Post. Every per-cell parse
// failure degrades to a null or default value, never an error.
func normalizeRow(field func(string) string) Post {
	p := Post{
		Heure:      field("heure"),
		Periode:    strings.TrimSpace(field("periode")),
		Contenu:    strings.TrimSpace(field("contenu")),
		Titre:      field("titre"),
		Lien:       strings.TrimSpace(field("lien")),
		Type:       strings.TrimSpace(field("type")),
		DureeReels: strings.TrimSpace(field("duree_reels")),
	}

	// Strict calendar format; anything else leaves the date null and the row
	// out of date-indexed views.
	if t, err := time.Parse(DateLayout, strings.TrimSpace(field("date"))); err == nil {
		p.Date = t
		p.HasDate = true
	}

	p.IsReel = p.Type == TypeReels
	p.IsPhoto = p.Type == TypePhoto
	p.IsCarousel = p.Type == TypeCarousel

	// Missing collaboration defaults to "Non".
	p.Collab = strings.TrimSpace(field("collab")) == "Oui"

	// Hashtags is the one counter that never stays null.
	if v := parseNumber(field("hashtags")); v.Valid {
		p.Hashtags = int(v.F)
	}

	p.NbImagesCarousel = parseNumber(field("nb_images_carousel"))

	p.Vues = parseNumber(field("vues"))
	p.VuesFollowers = parseNumber(field("vues_followers"))
	p.VuesNonFollowers = parseNumber(field("vues_non_followers"))
	p.NbInteractions = parseNumber(field("nb_interactions"))
	p.Likes = parseNumber(field("likes"))
	p.Commentaires = parseNumber(field("commentaires"))
	p.Partages = parseNumber(field("partages"))
	p.Enregistrements = parseNumber(field("enregistrements"))
	p.ActiviteProfil = parseNumber(field("activite_profil"))
	p.VisitesProfil = parseNumber(field("visites_profil"))
	p.FollowersPlus = parseNumber(field("followers_plus"))
	p.ClicsExternes = parseNumber(field("clics_externes"))

	return p
}

// parseNumber coerces a raw numeric cell: comma decimal separators become
// periods, empty cells are null, and anything that still fails to parse is
// null rather than an error.
func parseNumber(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}
	}
	return Num(f)
}
