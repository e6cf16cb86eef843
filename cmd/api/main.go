package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petorang/superpet-api/internal/adapters/httpapi"
	memgamesaverepo "github.com/petorang/superpet-api/internal/adapters/memory/gamesaverepo"
	memgemledger "github.com/petorang/superpet-api/internal/adapters/memory/gemledger"
	memmemberrepo "github.com/petorang/superpet-api/internal/adapters/memory/memberrepo"
	memroomkeyrepo "github.com/petorang/superpet-api/internal/adapters/memory/roomkeyrepo"
	memroomrepo "github.com/petorang/superpet-api/internal/adapters/memory/roomrepo"
	postgres "github.com/petorang/superpet-api/internal/adapters/postgres"
	pggamesaverepo "github.com/petorang/superpet-api/internal/adapters/postgres/gamesaverepo"
	pggemledger "github.com/petorang/superpet-api/internal/adapters/postgres/gemledger"
	pgmemberrepo "github.com/petorang/superpet-api/internal/adapters/postgres/memberrepo"
	"github.com/petorang/superpet-api/internal/adapters/postgres/migrations"
	pgroomkeyrepo "github.com/petorang/superpet-api/internal/adapters/postgres/roomkeyrepo"
	pgroomrepo "github.com/petorang/superpet-api/internal/adapters/postgres/roomrepo"
	redisgamesaverepo "github.com/petorang/superpet-api/internal/adapters/redis/gamesaverepo"
	"github.com/petorang/superpet-api/internal/app/accounts"
	"github.com/petorang/superpet-api/internal/app/game"
	"github.com/petorang/superpet-api/internal/app/gems"
	"github.com/petorang/superpet-api/internal/app/roomkeys"
	"github.com/petorang/superpet-api/internal/platform/auth/token"
	platformclock "github.com/petorang/superpet-api/internal/platform/clock"
	"github.com/petorang/superpet-api/internal/platform/config"
	gamesaverepoport "github.com/petorang/superpet-api/internal/ports/out/gamesaverepo"
	gemledgerport "github.com/petorang/superpet-api/internal/ports/out/gemledger"
	memberrepoport "github.com/petorang/superpet-api/internal/ports/out/memberrepo"
	roomkeyrepoport "github.com/petorang/superpet-api/internal/ports/out/roomkeyrepo"
	roomrepoport "github.com/petorang/superpet-api/internal/ports/out/roomrepo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	port := getenv("PORT", "8080")

	authCfg, err := config.LoadAuthConfigFromEnv()
	if err != nil {
		logger.Error("invalid auth config", slog.Any("error", err))
		os.Exit(1)
	}
	storageCfg, err := config.LoadStorageConfigFromEnv()
	if err != nil {
		logger.Error("invalid storage config", slog.Any("error", err))
		os.Exit(1)
	}

	clk := platformclock.NewSystemClock()
	codec := token.New(authCfg.Secret, authCfg.TokenTTL)

	var (
		memberRepo  memberrepoport.Repository
		ledgerRepo  gemledgerport.Repository
		saveRepo    gamesaverepoport.Repository
		roomRepo    roomrepoport.Repository
		roomKeyRepo roomkeyrepoport.Repository
		cleanups    []func()
	)

	switch storageCfg.Backend {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrations.Up(ctx, storageCfg.DatabaseURL); err != nil {
			cancel()
			logger.Error("migrations failed", slog.Any("error", err))
			os.Exit(1)
		}
		pool, err := postgres.NewPool(ctx, storageCfg.DatabaseURL, postgres.PoolOptions{})
		cancel()
		if err != nil {
			logger.Error("postgres connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		cleanups = append(cleanups, pool.Close)

		memberRepo = pgmemberrepo.NewRepo(pool)
		ledgerRepo = pggemledger.NewRepo(pool)
		saveRepo = pggamesaverepo.NewRepo(pool)
		roomRepo = pgroomrepo.NewRepo(pool)
		roomKeyRepo = pgroomkeyrepo.NewRepo(pool)
	default:
		memberRepo = memmemberrepo.NewRepo()
		ledgerRepo = memgemledger.NewRepo()
		saveRepo = memgamesaverepo.NewRepo()
		rooms := memroomrepo.NewRepo()
		roomRepo = rooms
		roomKeyRepo = memroomkeyrepo.NewRepo(rooms)
	}

	if storageCfg.GameSaveBackend == "redis" {
		repo, err := redisgamesaverepo.New(redisgamesaverepo.Config{URL: storageCfg.RedisURL})
		if err != nil {
			logger.Error("redis connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		cleanups = append(cleanups, func() { _ = repo.Close() })
		saveRepo = repo
	}

	defer func() {
		for _, fn := range cleanups {
			fn()
		}
	}()

	api := httpapi.NewServer(
		accounts.NewService(memberRepo, clk),
		gems.NewService(ledgerRepo, clk),
		game.NewService(saveRepo),
		roomkeys.NewService(roomRepo, roomKeyRepo, clk),
		codec,
		authCfg,
	)
	handler := httpapi.NewRouter(api, codec, logger)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening",
			slog.String("port", port),
			slog.String("storage_backend", storageCfg.Backend),
			slog.String("game_save_backend", storageCfg.GameSaveBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
