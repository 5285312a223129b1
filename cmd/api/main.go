package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "direct-admission/internal/handler/http"
	hauth "direct-admission/internal/handler/http/auth"
	hcatalog "direct-admission/internal/handler/http/catalog"
	"direct-admission/internal/handler/http/pathutil"
	"direct-admission/internal/handler/http/requestid"
	"direct-admission/internal/infra/adapter/persistence/memory"
	pgRepo "direct-admission/internal/infra/adapter/persistence/postgres"
	"direct-admission/internal/infra/db"
	"direct-admission/internal/infra/queryhint"
	workerPkg "direct-admission/internal/infra/worker"
	"direct-admission/internal/observability/logging"
	"direct-admission/internal/observability/tracing"
	pkgconfig "direct-admission/internal/pkg/config"
	"direct-admission/internal/repository"
	catUC "direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
	"direct-admission/pkg/config"
)

const (
	defaultPort = 8080
	// 元のサーバーと同じ JSON 上限。ワークブックの取り込みも同じ上限に収める
	defaultMaxBodyBytes = 10 << 20
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracing := initTracing(logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	issuer := initIssuer(logger)
	database, repo := initRepository(logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	svc := catUC.NewService(catUC.NewStore(repository.Snapshot{}), repo, catUC.Config{
		BootstrapAdminEmail: config.GetEnvString("INITIAL_ADMIN_EMAIL", ""),
	})
	loadCatalog(logger, svc)

	scheduler := startScheduler(logger, svc)

	parser, err := queryhint.FromEnv()
	if err != nil {
		logger.Error("failed to configure query hints", slog.Any("error", err))
		os.Exit(1)
	}

	version := config.GetEnvString("VERSION", "dev")
	handler := setupServer(logger, svc, parser, issuer, database, version)
	runServer(logger, handler, loadPort(logger), version, scheduler)
}

func initTracing(logger *slog.Logger) func(context.Context) error {
	if !config.GetEnvBool("TRACING_ENABLED", false) {
		return func(context.Context) error { return nil }
	}
	result := pkgconfig.LoadEnvFloat("TRACING_SAMPLE_RATIO", 1, pkgconfig.ValidateRatio)
	for _, w := range result.Warnings {
		logger.Warn("Configuration fallback applied", slog.String("field", "TRACING_SAMPLE_RATIO"), slog.String("warning", w))
	}
	ratio := result.Value.(float64)
	logger.Info("tracing enabled", slog.Float64("sample_ratio", ratio))
	return tracing.InitProvider(ratio)
}

// initIssuer validates JWT_SECRET and builds the session token issuer.
func initIssuer(logger *slog.Logger) *hauth.Issuer {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	for _, weak := range []string{"secret", "password", "changeme", "default"} {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
	issuer, err := hauth.NewIssuer([]byte(secret), config.GetEnvDuration("JWT_TTL", hauth.DefaultTokenTTL))
	if err != nil {
		logger.Error("invalid JWT configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return issuer
}

// initRepository opens Postgres when DATABASE_URL is set and otherwise
// falls back to the in-memory store seeded from CATALOG_SEED_FILE.
func initRepository(logger *slog.Logger) (*sql.DB, repository.CatalogRepository) {
	dsn := config.GetEnvString("DATABASE_URL", "")
	if dsn == "" {
		snap := repository.Snapshot{}
		if path := config.GetEnvString("CATALOG_SEED_FILE", ""); path != "" {
			var err error
			snap, err = memory.LoadSeedFile(path)
			if err != nil {
				logger.Error("failed to load catalog seed", slog.String("path", path), slog.Any("error", err))
				os.Exit(1)
			}
		}
		logger.Warn("DATABASE_URL not set, using in-memory catalog store; changes are lost on restart",
			slog.Int("colleges", len(snap.Colleges)),
			slog.Int("courses", len(snap.Courses)),
			slog.Int("users", len(snap.Users)))
		return nil, memory.NewCatalogRepo(snap)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	database, err := db.Open(ctx, dsn, db.ConnectionConfigFromEnv())
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, pgRepo.NewCatalogRepo(database)
}

// loadCatalog performs the first reload. A failure is logged and the
// service starts empty; the scheduler retries on its next tick.
func loadCatalog(logger *slog.Logger, svc *catUC.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := svc.Reload(ctx); err != nil {
		logger.Error("initial catalog load failed, starting empty", slog.Any("error", err))
	}
}

func startScheduler(logger *slog.Logger, svc *catUC.Service) *workerPkg.Scheduler {
	reloadMetrics := workerPkg.NewReloadMetrics()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, reloadMetrics)
	if err != nil {
		logger.Error("failed to load reload configuration", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler, err := workerPkg.NewScheduler(svc, *cfg, reloadMetrics, logger)
	if err != nil {
		logger.Error("failed to create reload scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	return scheduler
}

// loadPort reads PORT (1-65535), falling back to 8080.
func loadPort(logger *slog.Logger) int {
	result := pkgconfig.LoadEnvInt("PORT", defaultPort, func(p int) error {
		return pkgconfig.ValidateIntRange(p, 1, 65535)
	})
	for _, w := range result.Warnings {
		logger.Warn("Configuration fallback applied", slog.String("field", "PORT"), slog.String("warning", w))
	}
	return result.Value.(int)
}

// setupServer registers every route and wraps the mux in the middleware chain.
func setupServer(
	logger *slog.Logger,
	svc *catUC.Service,
	parser search.QueryParser,
	issuer *hauth.Issuer,
	database *sql.DB,
	version string,
) http.Handler {
	// レート制限: ログインとAI検索はIPごとに毎秒1リクエスト（バースト5）
	loginLimiter := hhttp.NewRateLimiter(1, 5)
	hintLimiter := hhttp.NewRateLimiter(
		float64(config.GetEnvInt("AI_SEARCH_RPS", 1)),
		config.GetEnvInt("AI_SEARCH_BURST", 5),
	)

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Catalog: svc, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database, Loaded: func() bool { return !svc.LastReload().IsZero() }})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("POST /auth/login", loginLimiter.Limit(hauth.LoginHandler(svc, issuer)))

	hcatalog.Register(mux, hcatalog.Deps{
		Catalog:   svc,
		Search:    &search.Service{Catalog: svc, Parser: parser},
		Parser:    parser,
		HintLimit: hintLimiter.Limit,
	})

	maxBody := int64(config.GetEnvInt("MAX_BODY_BYTES", defaultMaxBodyBytes))
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	// 内側から外側の順に適用
	var h http.Handler = mux
	h = hauth.Authz(issuer, svc)(h)
	h = hhttp.InputValidation(maxBody)(h)
	h = hhttp.Timeout(requestTimeout)(h)
	h = hhttp.MetricsMiddleware(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.Recover(logger)(h)
	h = tracing.NewMiddleware(func(r *http.Request) string {
		return r.Method + " " + pathutil.NormalizePath(r.URL.Path)
	})(h)
	h = requestid.Middleware(h)
	return h
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, port int, version string, scheduler *workerPkg.Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("reload scheduler did not stop in time", slog.Any("error", err))
	}
	cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
