package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	handlers "github.com/jesusrosales17/ecommerce-sub000/pkg/handlers/reports"
	reportsmiddleware "github.com/jesusrosales17/ecommerce-sub000/pkg/server/middleware"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/daterange"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/reports"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Registry   registry.Registry
	Resolver   daterange.Resolver
	Reports    reports.Service
	Exporter   export.Service
	Authorizer reportsmiddleware.Authorizer
	Logger     zerolog.Logger
	Now        func() time.Time
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter mounts the report routes under /api/v1 behind the admin gate
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	reportsHandler := handlers.NewHandler(deps.Registry, deps.Resolver, deps.Reports, deps.Exporter, deps.Now)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(reportsmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(reportsmiddleware.RequireAdmin(deps.Authorizer))

		r.Get("/reports", reportsHandler.ListReports)
		r.Post("/reports/generate", reportsHandler.GenerateReport)
		r.Post("/reports/export", reportsHandler.ExportReport)
		r.Get("/reports/{reportId}", reportsHandler.GetReport)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
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
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
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
