package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/auth"
	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/gateway"
	"github.com/channabasavaballolli/Edu-Pay/internal/handler"
	"github.com/channabasavaballolli/Edu-Pay/internal/repository"
	"github.com/channabasavaballolli/Edu-Pay/internal/service"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/response"
)

// App holds the wired services shared by the server, scheduler and CLI.
type App struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Tokens *auth.TokenIssuer

	Backend   gateway.API
	Payments  *service.PaymentCoordinator
	Directory *service.DirectoryService
	Auth      *service.AuthService
	Reports   *service.ReportService
}

// New builds the application. Postgres and Redis are only used when their
// URLs are configured; otherwise payments and orders stay in memory.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:  cfg,
		Tokens:  auth.NewTokenIssuer(cfg),
		Backend: gateway.NewClient(cfg),
	}

	var payments repository.PaymentRepository
	if cfg.Database.URL != "" {
		db, err := initDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		payments = repository.NewPaymentLedger(db)
		logger.Info(ctx, "payment ledger on postgres")
	} else {
		payments = repository.NewPaymentStore(repository.SeedPayments())
		logger.Info(ctx, "payment ledger in memory")
	}

	var orders repository.OrderRegistry
	if cfg.Redis.URL != "" {
		client, err := initRedis(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.Redis = client
		orders = repository.NewRedisOrderRegistry(client, cfg.GetOrderTTL())
	} else {
		orders = repository.NewMemoryOrderRegistry(cfg.GetOrderTTL())
	}

	accounts, err := repository.SeedAccounts()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build demo accounts: %w", err)
	}

	students := repository.NewStudentStore(repository.SeedStudents())
	fees := repository.NewFeeStore(repository.SeedFees())

	a.Payments = service.NewPaymentCoordinator(a.Backend, orders, payments, cfg)
	a.Directory = service.NewDirectoryService(a.Backend, students, fees, payments)
	a.Auth = service.NewAuthService(a.Backend, accounts, a.Tokens, cfg)
	a.Reports = service.NewReportService(a.Backend, students, payments, cfg)

	if cfg.Mode.Offline {
		logger.Warn(ctx, "offline mode enabled: demo logins and degraded verification are active",
			zap.Float64("demoSuccessRate", cfg.GetDemoSuccessRate()),
		)
	}
	if cfg.IsDevelopment() && cfg.Gateway.KeySecret == "" {
		logger.Warn(ctx, "RAZORPAY_KEY_SECRET not set: offline verification falls back to the demo draw")
	}
	return a, nil
}

// Handler returns the portal HTTP handler with CORS applied.
func (a *App) Handler() http.Handler {
	router := handler.NewRouter(handler.Handlers{
		Health:  handler.NewHealthHandler(a.Backend, a.DB, a.Redis, a.Config.GetHealthTimeout()),
		Auth:    handler.NewAuthHandler(a.Auth),
		Student: handler.NewStudentHandler(a.Directory),
		Payment: handler.NewPaymentHandler(a.Payments, a.Directory),
		Admin:   handler.NewAdminHandler(a.Directory),
		Report:  handler.NewReportHandler(a.Reports),
	}, a.Tokens)
	return response.CORSMiddleware(router)
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Errorf("Error closing redis: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Errorf("Error closing database: %v", err)
		}
	}
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
