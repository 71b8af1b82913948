package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Nithin-kumar-hub/Smart-Surveillance/internal/api/middleware"
)

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS())
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthHandler.HealthCheck)

		cameras := api.Group("/cameras")
		{
			cameras.GET("", s.cameraHandler.ListCameras)
			cameras.POST("", s.cameraHandler.AddCamera)
			cameras.POST("/:id/toggle", s.cameraHandler.ToggleCamera)
			cameras.DELETE("/:id", s.cameraHandler.DeleteCamera)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", s.alertHandler.ListAlerts)
			alerts.POST("/:id/acknowledge", s.alertHandler.AcknowledgeAlert)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/summary", s.analyticsHandler.Summary)
			analytics.GET("/hourly", s.analyticsHandler.Hourly)
		}

		api.POST("/detections", s.ingestHandler.PostDetection)
	}

	s.router.GET("/ws", s.wsHandler.Subscribe)
	s.router.GET("/metrics", gin.WrapH(s.services.Metrics.Handler()))
}
