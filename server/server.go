// Package server exposes pathfinding and game decisions over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gridsearch/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	search config.Search // defaults for game requests
	addr   string
	router *gin.Engine
}

func New(cfg config.Config) *Server {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		search: cfg.Search,
		addr:   cfg.Server.Addr,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), RequestLogger(), CORSMiddleware())

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := s.router.Group("/api")
	api.POST("/pathfinding/astar", s.handlePath)
	api.POST("/game/action", s.handleAction)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
