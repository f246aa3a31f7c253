package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httperr "github.com/salescope-lab/salescope/internal/core/errors"
	"github.com/salescope-lab/salescope/internal/store"
)

type Server struct {
	Engine *gin.Engine
	Addr   string
	holder *store.SnapshotHolder
}

func New(addr string, holder *store.SnapshotHolder, mode string) *Server {
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	// Panics surface as the same error envelope the API uses everywhere else.
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Internal server error",
		})
	}))

	s := &Server{
		Engine: r,
		Addr:   addr,
		holder: holder,
	}

	r.GET("/health", s.healthHandler)

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	snap := s.holder.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "no snapshot loaded",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"snapshot_version": snap.Version(),
		"records":          snap.Len(),
	})
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
