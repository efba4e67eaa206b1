// Package server wires configuration, providers, the session cache, the seat
// prober, and the HTTP surface into a runnable service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pancake-service/internal/config"
	"pancake-service/internal/http/handlers"
	"pancake-service/internal/http/middleware"
	"pancake-service/internal/logging"
	"pancake-service/internal/metrics"
	"pancake-service/internal/orchestrator"
	"pancake-service/internal/poller"
	"pancake-service/internal/seats"
	"pancake-service/internal/session"
)

// Server holds every long-lived component of the service.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder

	orchestrator *orchestrator.Orchestrator
	prober       *seats.Prober
	poller       *poller.Poller

	httpServer      *http.Server
	metricsServer   *http.Server
	shutdownMetrics func(context.Context) error
}

// New assembles the service from configuration. The version string ends up in
// logs and the health payload.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, version string) (*Server, error) {
	recorder, promHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, err
	}

	provider := newProvider(cfg, logger, recorder)
	cache := newSessionCache(cfg.Session, logger)
	statuses := session.NewStatusLog()
	prober := seats.NewProber(provider, logger, recorder)

	orch := orchestrator.New(provider, cache, statuses, prober, logger,
		cfg.Session.RequiredSeats, cfg.Session.MinimumRowLabel)

	refresher := poller.New(orch, cfg.Session.DefaultMarket, logger, recorder,
		time.Duration(cfg.PollInterval))

	handler := handlers.New(orch, refresher, cfg.Session.DefaultMarket, version)
	root := middleware.LoggingMiddleware(logger, recorder, handler.Routes())

	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,

		orchestrator: orch,
		prober:       prober,
		poller:       refresher,

		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           root,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		shutdownMetrics: shutdownMetrics,
	}

	if promHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promHandler)
		srv.metricsServer = &http.Server{
			Addr:              ":" + cfg.Metrics.Port,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}

	return srv, nil
}

// newSessionCache selects the configured cache backend, falling back to
// process memory when Redis is configured but unreachable.
func newSessionCache(cfg config.SessionConfig, logger *slog.Logger) session.Cache {
	if cfg.Backend == config.SessionBackendRedis {
		if client := config.NewRedisClient(); client != nil {
			logging.Info(logger, "session cache backed by redis", "key", cfg.CacheKey)
			return session.NewRedisCache(client, cfg.CacheKey, time.Duration(cfg.CacheTTL))
		}
		logging.Warn(logger, "redis unreachable, using in-memory session cache")
	}
	return session.NewMemoryCache()
}

// Run starts the pollers and HTTP listeners, blocking until the context is
// cancelled, then shuts everything down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.poller.Start(ctx)

	if s.metricsServer != nil {
		go func() {
			logging.Info(s.logger, "metrics listener started", "addr", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error(s.logger, "metrics listener failed", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(s.logger, "http listener started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.shutdown(context.Background())
			return err
		}
	}

	return s.shutdown(context.Background())
}

func (s *Server) shutdown(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, shutdownTimeout)
	defer cancel()

	logging.Info(s.logger, "shutting down")

	var firstErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.poller.Stop(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	s.prober.Shutdown()
	if s.shutdownMetrics != nil {
		if err := s.shutdownMetrics(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
