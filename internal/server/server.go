// Package server hosts the review API: the HTTP surface the review GUI
// talks to.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audiocheck/internal/server/handlers"
	"audiocheck/internal/server/middleware"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
}

// DefaultConfig listens on localhost:8090.
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         "8090",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		Environment:  "development",
	}
}

// Server is the review API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.SugaredLogger
}

// NewServer creates the review API server and registers all routes.
func NewServer(config Config, review *handlers.ReviewHandler, logger *zap.SugaredLogger) *Server {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/participants", review.ListParticipants)
			v1.GET("/participants/:id/results", review.GetResults)
			v1.POST("/participants/:id/transcribe", review.Transcribe)
			v1.PATCH("/participants/:id/results/:block/:trial", review.ApplyEdit)
			v1.GET("/participants/:id/stats", review.GetStats)
		}
	}

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	s.logger.Infow("starting review API",
		"host", s.config.Host,
		"port", s.config.Port,
		"environment", s.config.Environment,
	)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("shutting down review API")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorw("server forced to shutdown", "error", err)
		return err
	}

	return nil
}

// Router exposes the gin router for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
