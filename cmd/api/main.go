package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-journal/internal/config"
	hhttp "daily-journal/internal/handler/http"
	hentry "daily-journal/internal/handler/http/entry"
	"daily-journal/internal/handler/http/middleware"
	"daily-journal/internal/handler/http/requestid"
	"daily-journal/internal/observability/logging"
	"daily-journal/internal/observability/metrics"
	"daily-journal/internal/observability/tracing"
	entryUC "daily-journal/internal/usecase/entry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()
	logger.Info("store ready", slog.String("kind", cfg.Store.Kind))

	shutdownTracing := tracing.Setup()
	defer func() { _ = shutdownTracing(context.Background()) }()

	svc := &entryUC.Service{Repo: st.repo}

	refresher, err := metrics.NewStatsRefresher(svc, cfg.StatsSchedule, logger)
	if err != nil {
		return err
	}
	refresher.Start(ctx)
	defer refresher.Stop()

	srv := newServer(ctx, cfg.Addr(), newHandler(cfg, logger, svc, st))
	return serve(ctx, srv, cfg, logger)
}

// newServer derives request contexts from ctx without its cancellation, so a
// shutdown signal lets Shutdown drain in-flight requests instead of aborting them.
func newServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	base := context.WithoutCancel(ctx)
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return base
		},
	}
}

// newHandler builds the routes and the middleware chain. The first middleware
// listed is the outermost; all of them share one response recorder.
func newHandler(cfg *config.Config, logger *slog.Logger, svc *entryUC.Service, st *store) http.Handler {
	mux := http.NewServeMux()
	hentry.Register(mux, svc)
	mux.Handle("GET /health", &hhttp.HealthHandler{Store: st.ping, Kind: cfg.Store.Kind, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: st.ping})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	cors := middleware.DefaultCORSConfig(cfg.HTTP.CORSOrigins)
	cors.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cors.AllowedOrigins),
		slog.Any("allowed_methods", cors.AllowedMethods))

	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	if cfg.HTTP.RateLimitRPS <= 0 {
		logger.Warn("rate limiting is DISABLED")
	} else {
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.HTTP.RateLimitRPS),
			slog.Int("burst", cfg.HTTP.RateLimitBurst))
	}

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		middleware.CORS(cors),
		middleware.SecurityHeaders(middleware.APIPolicy),
		limiter.Middleware,
		hhttp.LimitRequestBody(cfg.HTTP.BodyLimit),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}

// serve runs srv until ctx is canceled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, cfg *config.Config, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
