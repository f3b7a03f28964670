package server

import (
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
	"github.com/CentipedeRTK/ticket-management-zammad/server/handlers"
)

func (s *Server) registerRoutes() {
	api := handlers.NewApi(
		s.cfg,
		common.NewZammadClient(s.cfg.ZammadURL, s.cfg.ZammadToken),
		common.NewGrafanaClient(s.cfg),
	)

	s.echo.GET("/api/health", api.HandleHealth())
	s.echo.GET("/health", api.HandleHealth())

	s.echo.GET("/api/countries", api.HandleListCountries())
	s.echo.GET("/countries", api.HandleListCountries())

	s.echo.GET("/api/mountpoints/check", api.HandleCheckMountPoint())

	s.echo.POST("/api/submit", api.HandleSubmit())
}
