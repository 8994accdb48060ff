// Package api exposes the analyzer over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/arjunmehta/tastemap/internal/analyzer"
	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/corpus"
	"github.com/arjunmehta/tastemap/internal/logger"
)

// Config holds HTTP server configuration.
type Config struct {
	Host        string
	Port        int
	AllowOrigin string
}

// Server provides the ingest/chat/stats endpoints.
type Server struct {
	echo     *echo.Echo
	analyzer *analyzer.Analyzer
	config   *Config
}

// ChatRequest is the request body for POST /chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// IngestResponse is the response body for POST /ingest.
type IngestResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed_tracks"`
	Total     int    `json:"total_tracks"`
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(a *analyzer.Analyzer, cfg *Config) (*Server, error) {
	if a == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	if cfg == nil {
		cfg = &Config{
			Host:        "0.0.0.0",
			Port:        8000,
			AllowOrigin: "http://localhost:3000",
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("HTTP %s %s -> %d (%s)", c.Request().Method, c.Request().RequestURI, c.Response().Status, time.Since(start))
			return err
		}
	})

	s := &Server{
		echo:     e,
		analyzer: a,
		config:   cfg,
	}
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.POST("/ingest", s.handleIngest)
	s.echo.POST("/chat", s.handleChat)
	s.echo.GET("/stats", s.handleStats)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Music Taste Analyzer API",
	})
}

// handleIngest accepts a multipart CSV upload with artist,song columns,
// rebuilds the collection and reports how many rows were enriched.
func (s *Server) handleIngest(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing 'file' upload")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "file must be a CSV")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to open upload: %v", err))
	}
	defer file.Close()

	pairs, err := corpus.ParsePairs(file)
	if err != nil {
		if errors.Is(err, core.ErrMissingColumns) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to parse csv: %v", err))
	}

	result, err := s.analyzer.Ingest(c.Request().Context(), pairs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("processing error: %v", err))
	}

	return c.JSON(http.StatusOK, IngestResponse{
		Message:   "Music library processed successfully",
		Processed: result.Processed,
		Total:     result.Total,
	})
}

// handleChat answers one free-text question about the stored catalog.
func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.analyzer.Query(c.Request().Context(), req.Query)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query error: %v", err))
	}

	return c.JSON(http.StatusOK, result)
}

// handleStats summarizes the stored catalog.
func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.analyzer.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("stats error: %v", err))
	}
	return c.JSON(http.StatusOK, stats)
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logger.Info("HTTP server listening on %s", addr)

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
