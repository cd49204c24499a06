// Package server serves the planning form and JSON API over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/mbudget/internal/config"
	"github.com/theirongolddev/mbudget/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultAddr is used when Options.Addr is empty.
const DefaultAddr = "127.0.0.1:8790"

// Options controls the server runtime behavior.
type Options struct {
	Addr         string
	Organization string
	IncludeChart bool
	Table        config.RatioTable
	// Defaults seeds every request; submitted fields overlay it.
	Defaults model.Inputs
	Logger   zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server provides the browser form and API.
type Server struct {
	opts   Options
	router *gin.Engine
	log    zerolog.Logger
}

// New returns a server with routes registered.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if len(opts.Table.Bands) == 0 {
		opts.Table = config.DefaultRatioTable
	}
	if opts.Organization == "" {
		opts.Organization = config.DefaultOrganization
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		opts:   opts,
		router: gin.New(),
		log:    opts.Logger,
	}

	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	s.router.SetHTMLTemplate(tmpl)
	s.router.Use(gin.Recovery(), requestLogger(s.log))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/", s.handleForm)
	s.router.POST("/", s.handleForm)

	api := s.router.Group("/api")
	{
		api.POST("/plan", s.handlePlan)
		api.GET("/bands", s.handleBands)
		api.POST("/report", s.handleReport)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.opts.Addr).Msg("listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}
