// Package mockserver is an in-memory color service speaking the same JSON API as the real one.
// It backs local development and the client tests.
package mockserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/colorcarnival/carnival/log"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server holds every palette and account in memory.
type Server struct {
	mu        sync.Mutex
	palettes  []*palette
	nextID    int
	nextColor int
	users     map[string]string
	tokens    map[string]string

	router *gin.Engine
}

// New creates an empty server with its routes registered.
func New() *Server {
	s := &Server{
		nextID:    1,
		nextColor: 1,
		users:     make(map[string]string),
		tokens:    make(map[string]string),
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery(), requestLogger())
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")

	api.GET("/palettes", s.listPalettes)
	api.POST("/palettes", s.createPalette)
	api.DELETE("/palettes/:id", s.deletePalette)
	api.DELETE("/palettes/:id/colors/:colorId", s.deleteColor)

	api.POST("/grid/analyze", s.analyzeGrid)
	api.POST("/pressure", s.computePressure)

	api.POST("/register", s.register)
	api.POST("/login", s.login)
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.With(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("mockserver request")
	}
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
