package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/api/handlers"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/config"
	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/services"
)

type Server struct {
	config   *config.Config
	services *services.ServiceContainer
	router   *gin.Engine
	server   *http.Server

	healthHandler    *handlers.HealthHandler
	cameraHandler    *handlers.CameraHandler
	alertHandler     *handlers.AlertHandler
	analyticsHandler *handlers.AnalyticsHandler
	ingestHandler    *handlers.IngestHandler
	wsHandler        *handlers.WSHandler
}

func NewServer(cfg *config.Config, sc *services.ServiceContainer) *Server {
	gin.SetMode(gin.ReleaseMode)

	natsConnected := func() bool {
		return sc.Messaging != nil && sc.Messaging.IsConnected()
	}

	return &Server{
		config:   cfg,
		services: sc,
		router:   gin.New(),
		healthHandler: handlers.NewHealthHandler(
			cfg.Version,
			natsConnected,
			sc.Hub.ClientCount,
			sc.CameraSvc.CountActive,
		),
		cameraHandler:    handlers.NewCameraHandler(sc.CameraSvc),
		alertHandler:     handlers.NewAlertHandler(sc.AlertsSvc),
		analyticsHandler: handlers.NewAnalyticsHandler(sc.AlertsSvc, cfg.ReportingLocation()),
		ingestHandler:    handlers.NewIngestHandler(sc.IngestSvc),
		wsHandler:        handlers.NewWSHandler(sc.Hub),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()
	s.setupRoutes()
	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

// Router exposes the configured engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting surveillance backend API")
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("Stopping surveillance backend API")
	return s.server.Shutdown(ctx)
}
