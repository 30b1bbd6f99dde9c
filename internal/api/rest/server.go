package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/icsuite/wireplan/internal/catalog"
	"github.com/icsuite/wireplan/internal/config"
)

type Server struct {
	router  *gin.Engine
	logger  *zap.Logger
	cfg     *config.Config
	catalog *catalog.Catalog
	server  *http.Server
}

func NewServer(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:  gin.New(),
		logger:  logger,
		cfg:     cfg,
		catalog: cat,
	}

	s.setupRoutes()

	readTimeout := cfg.Server.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("REST server failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down REST API server")
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(gin.Recovery())
	s.router.Use(CORSMiddleware())

	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		iolist := v1.Group("/iolist")
		{
			iolist.POST("/summary", s.summarizeIOList)
			iolist.POST("/upload", s.uploadIOList)
		}

		allocations := v1.Group("/allocations")
		{
			allocations.POST("/junction-boxes", s.allocateJunctionBoxes)
			allocations.POST("/io-cards", s.allocateIOCards)
		}

		cat := v1.Group("/catalog")
		{
			cat.GET("/vendors", s.listVendors)
			cat.GET("/vendors/:vendor", s.getVendorModules)
		}
	}
}

// Health check (public)
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "wireplan",
		"timestamp": time.Now().Unix(),
	})
}
