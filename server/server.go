package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
	customMiddleware "github.com/CentipedeRTK/ticket-management-zammad/server/middleware"
)

// uploadBodyLimit mirrors the form's attachment ceiling.
const uploadBodyLimit = "200M"

type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

func New(cfg config.Config) *Server {
	e := echo.New()
	// Read timeout covers multi-megabyte uploads; write timeout must
	// outlast the long confirmation-email call.
	e.Server.ReadTimeout = 2 * time.Minute
	e.Server.WriteTimeout = 4 * time.Minute
	e.Server.IdleTimeout = 120 * time.Second

	e.Use(middleware.RequestID())
	e.Use(customMiddleware.RequestLogger())
	e.Use(customMiddleware.Cors(cfg.CORSOrigins))
	e.Use(middleware.BodyLimit(uploadBodyLimit))

	return &Server{
		echo: e,
		cfg:  cfg,
	}
}

func (s *Server) Run() (err error) {
	s.registerRoutes()

	err = s.echo.Start("0.0.0.0:3000")
	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
