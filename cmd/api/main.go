package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/manemajef/clients-app/internal/config"
	httptransport "github.com/manemajef/clients-app/internal/http"
	"github.com/manemajef/clients-app/internal/http/handler"
	httpmiddleware "github.com/manemajef/clients-app/internal/http/middleware"
	"github.com/manemajef/clients-app/internal/migrations"
	"github.com/manemajef/clients-app/internal/password"
	"github.com/manemajef/clients-app/internal/repository"
	"github.com/manemajef/clients-app/internal/server"
	"github.com/manemajef/clients-app/internal/service"
	"github.com/manemajef/clients-app/internal/telemetry"
	"github.com/manemajef/clients-app/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newTxManager,
			newUserRepository,
			newClientRepository,
			newContactRepository,
			newMeetingRepository,
			newHasher,
			newTokenIssuer,
			service.NewUserService,
			service.NewClientService,
			service.NewMeetingService,
			handler.NewAuthHandler,
			handler.NewClientHandler,
			handler.NewMeetingHandler,
			handler.NewAdminHandler,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, runMigrations, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newTxManager(pool *pgxpool.Pool) repository.Tx {
	return repository.NewTxManager(pool)
}

func newUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return repository.NewPostgresUserRepo(pool)
}

func newClientRepository(pool *pgxpool.Pool) repository.ClientRepository {
	return repository.NewPostgresClientRepo(pool)
}

func newContactRepository(pool *pgxpool.Pool) repository.ContactRepository {
	return repository.NewPostgresContactRepo(pool)
}

func newMeetingRepository(pool *pgxpool.Pool) repository.MeetingRepository {
	return repository.NewPostgresMeetingRepo(pool)
}

func newHasher(cfg config.Config) *password.Hasher {
	return password.NewHasher(cfg.BcryptCost)
}

func newTokenIssuer(cfg config.Config) (*token.Issuer, error) {
	return token.NewIssuer(cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

func newAuthMiddleware(users *service.UserService) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Users: users}
}

func runMigrations(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrations.Run(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations applied")
	return nil
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// Bind before returning so a taken port fails startup
			// instead of being logged from the serve goroutine.
			ln, err := srv.Listen(addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Serve(runCtx, ln); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
