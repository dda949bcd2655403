package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/seo-tools/traffic-atlas/pkg/handlers/report"
	trafficmiddleware "github.com/seo-tools/traffic-atlas/pkg/server/middleware"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/config"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Properties config.Registry
	Collectors collect.Registry
	Snapshots  snapshot.Store
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	reportHandler := handlers.NewHandler(
		config.Dependencies.Properties,
		config.Dependencies.Collectors,
		config.Dependencies.Snapshots,
	)

	router := chi.NewRouter()

	router.Use(trafficmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/properties", reportHandler.ListProperties)
		r.Get("/properties/{property}/report", reportHandler.GetReport)
		r.Get("/properties/{property}/runs", reportHandler.ListRuns)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
