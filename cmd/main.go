package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/bankcore/internal/config"
	"github.com/sbilibin2017/bankcore/internal/events"
	"github.com/sbilibin2017/bankcore/internal/facades"
	"github.com/sbilibin2017/bankcore/internal/handlers"
	"github.com/sbilibin2017/bankcore/internal/jobs"
	"github.com/sbilibin2017/bankcore/internal/jwt"
	"github.com/sbilibin2017/bankcore/internal/logger"
	"github.com/sbilibin2017/bankcore/internal/middlewares"
	"github.com/sbilibin2017/bankcore/internal/models"
	"github.com/sbilibin2017/bankcore/internal/policy"
	"github.com/sbilibin2017/bankcore/internal/repositories"
	"github.com/sbilibin2017/bankcore/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title bankcore API
// @version 1.0.0
// @description Banking ledger with user, admin and manager roles
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// app holds what the router needs.
type app struct {
	tokens    *jwt.JWT
	accounts  *repositories.AccountReadRepository
	attempts  *repositories.AttemptRepository
	sessions  *services.SessionRegistry
	pins      *services.PINGuard
	auth      *services.AuthService
	ledger    *services.LedgerService
	admin     *services.AdminService
	divisions *services.DivisionService
}

// newRouter mounts every route on a chi router.
func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(a.auth, a.divisions))
	r.Post("/login", handlers.NewLoginHandler(a.auth))
	r.Post("/password/reset-request", handlers.NewPasswordResetRequestHandler(a.auth, handlers.LogResetNotifier{}))
	r.Post("/password/reset", handlers.NewPasswordResetHandler(a.auth))

	// Division catalog, used by the registration and profile forms
	r.Route("/api", func(r chi.Router) {
		r.Get("/regions", handlers.NewRegionsHandler(a.divisions))
		r.Get("/provinces/{code}", handlers.NewProvincesHandler(a.divisions))
		r.Get("/cities/{code}", handlers.NewCitiesHandler(a.divisions))
		r.Get("/barangays/{code}", handlers.NewBarangaysHandler(a.divisions))
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(a.tokens, a.accounts, a.sessions))

		r.Post("/logout", handlers.NewLogoutHandler(a.auth))
		r.Post("/password/change", handlers.NewChangePasswordHandler(a.auth))
		r.Post("/pin", handlers.NewSetPINHandler(a.auth))
		r.Post("/pin/reset", handlers.NewResetPINHandler(a.auth, a.attempts))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireCapabilities(
				policy.RequirePasswordCurrent,
				policy.RequirePINSet,
				policy.RequireActiveOrPrivileged,
			))
			r.Get("/account", handlers.NewAccountHandler(a.ledger))
			r.Post("/transfer", handlers.NewTransferHandler(a.ledger, a.accounts, a.attempts, a.pins))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.RequireCapabilities(policy.RequirePasswordCurrent, policy.RequireAdmin))

			r.Get("/users", handlers.NewListUsersHandler(a.admin))
			r.Post("/users", handlers.NewCreateAccountHandler(a.admin))
			r.Put("/users/{id}", handlers.NewEditUserHandler(a.admin))
			r.Post("/users/{id}/activate", handlers.NewSetStatusHandler(a.admin, models.StatusActive))
			r.Post("/users/{id}/deactivate", handlers.NewSetStatusHandler(a.admin, models.StatusDeactivated))
			r.Post("/users/{id}/force-logout", handlers.NewForceLogoutHandler(a.admin))
			r.Post("/deposit", handlers.NewDepositHandler(a.ledger, a.accounts, a.attempts, a.pins))
		})

		r.Route("/manager", func(r chi.Router) {
			r.Use(middlewares.RequireCapabilities(policy.RequirePasswordCurrent, policy.RequireManager))

			r.Get("/admins", handlers.NewListAdminsHandler(a.admin))
			r.Post("/admins", handlers.NewCreateAdminHandler(a.admin, a.attempts, a.pins))
			r.Post("/admins/{id}/promote", handlers.NewSetAdminHandler(a.admin, a.attempts, a.pins, true))
			r.Post("/admins/{id}/demote", handlers.NewSetAdminHandler(a.admin, a.attempts, a.pins, false))
			r.Get("/transactions", handlers.NewSearchTransactionsHandler(a.admin))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// run initializes the logger, database, Redis, event publisher and HTTP server.
// It sets up routes, starts the session sweeper and handles graceful shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PostgresHost, "port", cfg.PostgresPort, "db", cfg.PostgresDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PostgresMaxOpenConns)
	db.SetMaxIdleConns(cfg.PostgresMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.Migrate {
		if err := repositories.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Log.Info("Database schema is up to date")
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	// Event publisher
	publisher, err := events.New(events.Options{
		Broker:         cfg.EventsBroker,
		KafkaBrokers:   cfg.KafkaBrokerList(),
		KafkaTopic:     cfg.KafkaTopic,
		RabbitURL:      cfg.RabbitMQURL,
		RabbitExchange: cfg.RabbitExchange,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Errorw("failed to close event publisher", "error", err)
		}
	}()

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.JWTExpiration()),
		jwt.WithResetExpiration(cfg.PasswordResetExpiration()),
	)

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	accountRead := repositories.NewAccountReadRepository(db)
	accountWrite := repositories.NewAccountWriteRepository(db)
	txRead := repositories.NewTransactionReadRepository(db)
	txWrite := repositories.NewTransactionWriteRepository(db)
	attempts := repositories.NewAttemptRepository(rdb, cfg.PINAttemptTTL())
	divisionCache := repositories.NewDivisionCacheRepository(rdb, cfg.PSGCCacheTTL())

	// Initialize services
	psgc := facades.NewDivisionsFacade(cfg.PSGCBaseURL, &http.Client{Timeout: 10 * time.Second})
	divisions := services.NewDivisionService(psgc, divisionCache)
	sessions := services.NewSessionRegistry(accountWrite, cfg.SessionIdleTimeout())
	ledger := services.NewLedgerService(txManager, accountWrite, txWrite, accountRead, publisher)
	auth := services.NewAuthService(accountRead, accountWrite, accountWrite, sessions, tokens)
	admin := services.NewAdminService(txManager, accountRead, accountWrite, accountWrite, ledger, sessions, divisions, txRead)

	if _, err := auth.SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	// Idle-session sweeper
	scheduler := jobs.NewScheduler()
	if err := scheduler.AddSessionSweep(cfg.SessionSweepSchedule, sessions); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	r := newRouter(&app{
		tokens:    tokens,
		accounts:  accountRead,
		attempts:  attempts,
		sessions:  sessions,
		pins:      services.NewPINGuard(cfg.PINMaxAttempts),
		auth:      auth,
		ledger:    ledger,
		admin:     admin,
		divisions: divisions,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
