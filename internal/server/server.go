// Package server exposes the timestamp pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"timestamp-bot/internal/apperr"
	"timestamp-bot/internal/timestamp"
	"timestamp-bot/internal/version"
	"timestamp-bot/pkg/cmd"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	engine        *gin.Engine
	log           zerolog.Logger
	defaultOffset timestamp.Offset
	now           func() time.Time
}

// New builds the router. now defaults to time.Now.
func New(defaultOffset timestamp.Offset, now func() time.Time, log zerolog.Logger) *Server {
	if now == nil {
		now = time.Now
	}
	s := &Server{
		engine:        gin.New(),
		log:           log.With().Str("component", "http").Logger(),
		defaultOffset: defaultOffset,
		now:           now,
	}

	s.engine.Use(gin.Recovery(), s.requestID(), s.accessLog())
	s.engine.GET("/health", s.health)
	api := s.engine.Group("/api/v1")
	api.GET("/timestamp", s.timestamp)
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	s.log.Info().Str("addr", addr).Msg("http server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"app":     version.AppName,
		"version": version.String(),
	})
}

type timestampResponse struct {
	Badge   string `json:"badge"`
	Content string `json:"content"`
	Offset  string `json:"offset"`
	Format  string `json:"format"`
}

func (s *Server) timestamp(c *gin.Context) {
	opts := queryOptions(c, timestamp.OptionDescriptor, timestamp.OptionTimezone, timestamp.OptionFormat, timestamp.OptionList)

	req, err := timestamp.ParseRequest(opts, s.defaultOffset)
	if err != nil {
		s.fail(c, err)
		return
	}
	now := s.now()
	badge, err := req.Badge(now)
	if err != nil {
		s.fail(c, err)
		return
	}
	reply, err := req.Render(now)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, timestampResponse{
		Badge:   badge,
		Content: reply.Content,
		Offset:  req.Offset.String(),
		Format:  req.Format.Marker(),
	})
}

// queryOptions turns the present query parameters into command options, in
// the order given. Absent parameters fall back to the command defaults.
func queryOptions(c *gin.Context, names ...string) []cmd.Option {
	var opts []cmd.Option
	for _, name := range names {
		if v, ok := c.GetQuery(name); ok {
			opts = append(opts, cmd.Option{Name: name, Value: v})
		}
	}
	return opts
}

func (s *Server) fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindResolution:
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	}
}
