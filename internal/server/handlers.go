package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moelabs/instalytics/internal/aggregate"
	"github.com/moelabs/instalytics/internal/auth"
	"github.com/moelabs/instalytics/internal/dataset"
	"github.com/moelabs/instalytics/internal/export"
	"github.com/moelabs/instalytics/internal/filter"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleLogout(c *gin.Context) {
	const prefix = "Bearer "
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, prefix) {
		s.gate.Logout(h[len(prefix):])
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummary(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ds := f.Apply(s.ds)
	reels, photos, carousels := ds.TypeCounts()

	kpis := gin.H{}
	for _, m := range []string{"taux_engagement", "taux_attraction", "pct_non_followers"} {
		v, _ := aggregate.MetricMean(ds, m)
		if v.Valid {
			kpis[m] = v.F
		} else {
			kpis[m] = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":            ds.Len(),
		"reels":            reels,
		"photos":           photos,
		"carousels":        carousels,
		"types_consistent": ds.TypesConsistent(),
		"missing_columns":  ds.MissingColumns,
		"outliers":         ds.OutlierCounts(),
		"kpis":             kpis,
	})
}

func (s *Server) handlePosts(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	search, err := searchFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ds := search.Apply(f.Apply(s.ds))

	type row struct {
		Date           string   `json:"date"`
		Heure          string   `json:"heure"`
		Type           string   `json:"type"`
		Titre          string   `json:"titre"`
		Lien           string   `json:"lien"`
		Vues           *float64 `json:"vues"`
		Interactions   *float64 `json:"nb_interactions"`
		TauxEngagement *float64 `json:"taux_engagement"`
		TauxAttraction *float64 `json:"taux_attraction"`
		DureeReels     string   `json:"duree_reels,omitempty"`
		NbImages       *float64 `json:"nb_images_carousel,omitempty"`
	}
	rows := make([]row, 0, ds.Len())
	for i := range ds.Posts {
		p := &ds.Posts[i]
		r := row{
			Heure:          p.Heure,
			Type:           p.Type,
			Titre:          p.Titre,
			Lien:           p.Lien,
			Vues:           floatPtr(p.Vues),
			Interactions:   floatPtr(p.NbInteractions),
			TauxEngagement: floatPtr(p.TauxEngagement),
			TauxAttraction: floatPtr(p.TauxAttraction),
			DureeReels:     p.DureeReels,
			NbImages:       floatPtr(p.NbImagesCarousel),
		}
		if p.HasDate {
			r.Date = p.Date.Format(dataset.DateLayout)
		}
		rows = append(rows, r)
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rows), "posts": rows})
}

func (s *Server) handleTimeseries(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics := c.QueryArray("metric")
	res, err := aggregate.ParseResolution(c.DefaultQuery("resolution", string(aggregate.ByDay)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := aggregate.ParseMode(c.DefaultQuery("agg", string(aggregate.Sum)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	points, err := aggregate.TimeSeries(f.Apply(s.ds), metrics, res, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (s *Server) handleSegments(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	groupBy := c.QueryArray("by")
	metric := c.DefaultQuery("metric", "vues")
	mode, err := aggregate.ParseMode(c.DefaultQuery("agg", string(aggregate.Mean)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := aggregate.Segments(f.Apply(s.ds), groupBy, metric, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": rows})
}

func (s *Server) handleReelDurations(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats := aggregate.ReelDurations(filter.Reels(f.Apply(s.ds)))
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleHeatmap(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metric := c.DefaultQuery("metric", "vues")
	cells, err := aggregate.Heatmap(f.Apply(s.ds), metric)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": cells})
}

func (s *Server) handleExport(c *gin.Context) {
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="moe_instagram_analytics.csv"`)
	if err := export.WriteDataset(c.Writer, f.Apply(s.ds)); err != nil {
		// Headers are gone at this point; log and give up on the response.
		c.Status(http.StatusInternalServerError)
	}
}

// filterFromQuery reads the six sidebar dimensions from query parameters.
// Absent parameters impose no constraint.
func filterFromQuery(c *gin.Context) (filter.Filter, error) {
	var f filter.Filter
	var err error
	if f.From, err = dateParam(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = dateParam(c, "to"); err != nil {
		return f, err
	}
	f.Periode = c.Query("periode")
	f.Contenu = c.Query("contenu")
	switch strings.ToLower(c.Query("collab")) {
	case "":
	case "oui", "true":
		t := true
		f.Collab = &t
	case "non", "false":
		ff := false
		f.Collab = &ff
	default:
		return f, errBadParam("collab", c.Query("collab"))
	}
	minS, maxS := c.Query("hashtags_min"), c.Query("hashtags_max")
	if minS != "" || maxS != "" {
		r := filter.Range{Min: 0, Max: int(^uint(0) >> 1)}
		if minS != "" {
			if r.Min, err = strconv.Atoi(minS); err != nil {
				return f, errBadParam("hashtags_min", minS)
			}
		}
		if maxS != "" {
			if r.Max, err = strconv.Atoi(maxS); err != nil {
				return f, errBadParam("hashtags_max", maxS)
			}
		}
		f.Hashtags = &r
	}
	f.Moment = dataset.TimeBucket(c.Query("moment"))
	return f, nil
}

func searchFromQuery(c *gin.Context) (filter.Search, error) {
	return filter.Search{
		Types: c.QueryArray("type"),
		Query: c.Query("q"),
	}, nil
}

func dateParam(c *gin.Context, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dataset.DateLayout, s)
	if err != nil {
		return nil, errBadParam(name, s)
	}
	return &t, nil
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + ": " + e.value
}

func errBadParam(name, value string) error {
	return &paramError{name: name, value: value}
}

func floatPtr(v dataset.Value) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.F
	return &f
}
