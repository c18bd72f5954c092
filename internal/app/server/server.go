package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"agrobooks/internal/domain/audit"
	"agrobooks/internal/domain/ledger"
	"agrobooks/internal/domain/payroll"
	"agrobooks/internal/domain/reports"
	"agrobooks/internal/domain/trade"
	"agrobooks/internal/platform/cache"
	"agrobooks/internal/platform/config"
	"agrobooks/internal/platform/db"
	"agrobooks/internal/platform/jobs"
	"agrobooks/internal/platform/metrics"
	audithandler "agrobooks/internal/transport/http/handlers/audit"
	ledgerhandler "agrobooks/internal/transport/http/handlers/ledger"
	payrollhandler "agrobooks/internal/transport/http/handlers/payroll"
	reportshandler "agrobooks/internal/transport/http/handlers/reports"
	tradehandler "agrobooks/internal/transport/http/handlers/trade"
	"agrobooks/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Cache   *cache.Cache
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Router  http.Handler
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Services is everything the router serves. Readiness checks every Ready
// entry; Metrics and Audit may be nil.
type Services struct {
	Audit   *audit.Service
	Trade   *trade.Service
	Ledger  *ledger.Service
	Payroll *payroll.Service
	Reports *reports.Service
	Jobs    *jobs.Service
	Cache   middleware.Invalidator
	Metrics *metrics.Collector
	Ready   []Pinger
}

func Run() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("agrobooks server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "err", err)
		}
	}
}

// New connects the database and cache, applies migrations when enabled and
// builds the router. Background jobs are created but not started.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	redisCache := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	var collector *metrics.Collector
	var recorder jobs.Recorder
	if cfg.MetricsEnabled {
		collector = metrics.New()
		recorder = collector
	}

	auditSvc := audit.New(audit.NewStore(pool))
	tradeSvc := trade.NewService(trade.NewStore(pool))
	ledgerSvc := ledger.NewService(ledger.NewStore(pool))
	payrollSvc := payroll.NewService(payroll.NewStore(pool))
	reportsSvc := reports.NewService(
		reports.Sources{Trade: tradeSvc, Expenses: ledgerSvc, Payroll: payrollSvc},
		reports.NewStore(pool),
		redisCache,
		cfg.SummaryCacheTTL,
	)
	jobsSvc := jobs.New(pool, tradeSvc, recorder, jobs.Options{
		OverdueDays:         cfg.OverdueDays,
		OverdueScanInterval: cfg.OverdueScanInterval,
	})

	router := NewRouter(cfg, Services{
		Audit:   auditSvc,
		Trade:   tradeSvc,
		Ledger:  ledgerSvc,
		Payroll: payrollSvc,
		Reports: reportsSvc,
		Jobs:    jobsSvc,
		Cache:   redisCache,
		Metrics: collector,
		Ready:   []Pinger{pool, redisCache},
	})

	return &App{
		Config:  cfg,
		DB:      pool,
		Cache:   redisCache,
		Metrics: collector,
		Jobs:    jobsSvc,
		Router:  router,
	}, nil
}

func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		slog.Warn("cache close failed", "err", err)
	}
	a.DB.Close()
}

func NewRouter(cfg config.Config, svc Services) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if svc.Metrics != nil {
		router.Use(middleware.Metrics(svc.Metrics))
	}
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, dep := range svc.Ready {
			if err := dep.Ping(ctx); err != nil {
				slog.Warn("readiness check failed", "err", err)
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if svc.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.WriteRateLimit(cfg.RateLimitPerMinute, time.Minute))
		if svc.Cache != nil {
			r.Use(middleware.InvalidateOnWrite(svc.Cache, reports.SummaryCacheKey))
		}

		tradehandler.NewHandler(svc.Trade, svc.Audit, cfg.OverdueDays).RegisterRoutes(r)
		ledgerhandler.NewHandler(svc.Ledger, svc.Audit).RegisterRoutes(r)
		payrollhandler.NewHandler(svc.Payroll, svc.Audit).RegisterRoutes(r)
		reportshandler.NewHandler(svc.Reports, svc.Jobs).RegisterRoutes(r)
		if svc.Audit != nil {
			audithandler.NewHandler(svc.Audit).RegisterRoutes(r)
		}
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
