package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
	"github.com/CentipedeRTK/ticket-management-zammad/server"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	if err := run(); err != nil {
		log.Fatal().Caller().Err(err).Msg("failed to start")
	}
}

func run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var cfg config.Config
	err := config.FromEnv(&cfg)
	if err != nil {
		return err
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return fmt.Errorf("validation of config failed: %w", err)
	}

	if cfg.ZammadToken == "" {
		// Boot anyway so health and countries still serve; submissions
		// answer 500 until the operator provides the token.
		log.Warn().Msg("ZAMMAD_TOKEN is not set, submissions will be rejected")
	}

	s := server.New(cfg)
	go func() {
		err := s.Run()
		if err != nil {
			panic(err)
		}
	}()

	<-stop

	return s.Stop()
}
