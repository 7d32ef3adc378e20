package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/starmatch/internal/cache"
	"github.com/GlebRadaev/starmatch/internal/config"
	"github.com/GlebRadaev/starmatch/internal/handlers"
	"github.com/GlebRadaev/starmatch/internal/pg"
	matchrepo "github.com/GlebRadaev/starmatch/internal/repo/match-repo"
	transactionrepo "github.com/GlebRadaev/starmatch/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/starmatch/internal/repo/user-repo"
	"github.com/GlebRadaev/starmatch/internal/service/adminservice"
	"github.com/GlebRadaev/starmatch/internal/service/authservice"
	"github.com/GlebRadaev/starmatch/internal/service/matchservice"
	"github.com/GlebRadaev/starmatch/internal/service/paymentservice"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/internal/sweeper"
	"github.com/GlebRadaev/starmatch/internal/telegram"
	"github.com/GlebRadaev/starmatch/pkg/auth"
	"github.com/GlebRadaev/starmatch/pkg/clients"
	"github.com/GlebRadaev/starmatch/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg     *config.Config
	pool    *pgxpool.Pool
	redis   *cache.RedisCache
	server  *http.Server
	sweeper *sweeper.Sweeper
}

func New() *App {
	return &App{}
}

func (a *App) Start(ctx context.Context) error {
	a.cfg = config.New()

	if err := logger.InitLogger(a.cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := pgxpool.New(ctx, a.cfg.Database)
	if err != nil {
		return fmt.Errorf("can't create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("can't reach database: %w", err)
	}
	a.pool = pool

	if err := pg.RunMigrations(pool); err != nil {
		return fmt.Errorf("can't run migrations: %w", err)
	}

	a.redis = cache.New(a.cfg.RedisAddress)
	if err := a.redis.Ping(ctx); err != nil {
		zap.L().Warn("redis unavailable, admin stats won't be cached", zap.Error(err))
	}

	db := pg.New(pool)
	txManager := pg.NewTXManager(pool)

	userRepo := userrepo.New(db)
	matchRepo := matchrepo.New(db, txManager)
	transactionRepo := transactionrepo.New(db)

	botClient := telegram.New(a.cfg, clients.NewHTTPClient())
	jwtService := auth.NewJWTService(a.cfg.JWTSecret)
	verifier := auth.NewInitDataVerifier(a.cfg.BotToken)

	userService := userservice.New(userRepo, transactionRepo)
	matchService := matchservice.New(userRepo, matchRepo, transactionRepo, txManager, botClient)
	paymentService := paymentservice.New(userRepo, transactionRepo, botClient, txManager)
	adminService := adminservice.New(a.cfg.AdminID, userRepo, matchRepo, transactionRepo, a.redis)
	authService := authservice.New(verifier, jwtService, userService)

	handler := handlers.New(
		authService, userService, matchService, paymentService, adminService,
		botClient, jwtService, a.cfg.WebhookSecret,
	)

	router := chi.NewRouter()
	handler.InitRoutes(router)

	a.server = &http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.sweeper = sweeper.New(matchRepo)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		zap.L().Info("http server started", zap.String("address", a.cfg.Address))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := a.sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return group.Wait()
}

func (a *App) shutdown() error {
	zap.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		zap.L().Error("can't shutdown http server", zap.Error(err))
	}
	if err := a.redis.Close(); err != nil {
		zap.L().Error("can't close redis client", zap.Error(err))
	}
	a.pool.Close()
	return nil
}
