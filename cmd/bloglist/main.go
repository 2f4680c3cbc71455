package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code2244/bloglist/internal/config"
	"github.com/code2244/bloglist/internal/handler"
	"github.com/code2244/bloglist/internal/logger"
	"github.com/code2244/bloglist/internal/middleware"
	"github.com/code2244/bloglist/internal/repository"
	"github.com/code2244/bloglist/internal/router"
	"github.com/code2244/bloglist/internal/server"
	"github.com/code2244/bloglist/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	if srv.Job != nil {
		srv.Job.InitHandlers(services.Blog)
		if err := srv.Job.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start background jobs")
		}
	}

	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, middlewares)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
