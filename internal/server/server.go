package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/config"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/detection"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/handler"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/service"
	"github.com/AnishkaKhobragade/DeFake-AI/web"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	engine, err := detection.New(cfg.Detection)
	if err != nil {
		return nil, fmt.Errorf("failed to create detection engine: %w", err)
	}

	router, err := NewRouter(cfg, engine, log)
	if err != nil {
		return nil, err
	}

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        router,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("engine", engine.Name()))

	return server, nil
}

// NewRouter wires the page and API routes around the given engine.
func NewRouter(cfg *config.Config, engine detection.Engine, log *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), cors.New(corsConfig(cfg.Server.CORSOrigins)))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	ingestor := service.NewMediaIngestor(&cfg.App, log)
	analysis := service.NewAnalysisService(engine, log)

	h := handler.NewHandler(ingestor, analysis, cfg, log)

	router.GET("/", h.GetUI)
	router.POST("/", h.AnalyzePage)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/analyze", h.AnalyzeMedia)
		api.POST("/factcheck", h.FactCheck)
		api.POST("/advise", h.Advise)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
