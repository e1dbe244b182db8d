// Package server exposes the filtered and aggregated views over HTTP behind
// the credential gate. The dataset is loaded once and shared read-only;
// every request derives its own filtered view, so sessions never observe
// each other's selections.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moelabs/instalytics/internal/auth"
	"github.com/moelabs/instalytics/internal/config"
	"github.com/moelabs/instalytics/internal/dataset"
)

const (
	readTimeoutSeconds  = 10
	writeTimeoutSeconds = 30
	idleTimeoutSeconds  = 120
)

// Server wires the dataset, the gate and the router together.
type Server struct {
	cfg    *config.Config
	ds     *dataset.Dataset
	gate   *auth.Gate
	router *gin.Engine
	server *http.Server
}

// New builds the HTTP server around an already loaded dataset.
func New(cfg *config.Config, ds *dataset.Dataset) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())

	gate := auth.NewGate(cfg.Username, cfg.Password, time.Duration(cfg.SessionTTLMin)*time.Minute)

	s := &Server{
		cfg:    cfg,
		ds:     ds,
		gate:   gate,
		router: router,
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "posts": ds.Len()})
	})

	api := router.Group("/api")
	api.POST("/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(s.authRequired())
	authed.POST("/logout", s.handleLogout)
	authed.GET("/summary", s.handleSummary)
	authed.GET("/posts", s.handlePosts)
	authed.GET("/timeseries", s.handleTimeseries)
	authed.GET("/segments", s.handleSegments)
	authed.GET("/reels/durations", s.handleReelDurations)
	authed.GET("/heatmap", s.handleHeatmap)
	authed.GET("/export", s.handleExport)

	s.server = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Start blocks serving HTTP.
func (s *Server) Start() error {
	log.Printf("listening on %s (%d posts loaded)", s.cfg.ListenAddr, s.ds.Len())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		h := c.GetHeader("Authorization")
		if len(h) <= len(prefix) || h[:len(prefix)] != prefix || !s.gate.Check(h[len(prefix):]) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Printf("[%s] %s %s %d %v", method, path, c.ClientIP(), c.Writer.Status(), time.Since(start))
	}
}
