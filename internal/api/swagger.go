package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Nithin-kumar-hub/Smart-Surveillance/docs"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Smart Surveillance API",
			"version":     s.config.Version,
			"description": "Alert lifecycle and real-time delivery backend for weapon detection cameras",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"health":     "/api/health",
				"cameras":    "/api/cameras",
				"alerts":     "/api/alerts",
				"analytics":  "/api/analytics",
				"detections": "/api/detections",
				"events":     "/ws",
				"metrics":    "/metrics",
			},
			"port": s.config.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
