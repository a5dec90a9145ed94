package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"p2p_market/internal/config"
	"p2p_market/internal/domain/entity"
	dealservice "p2p_market/internal/domain/service/deal"
	listingservice "p2p_market/internal/domain/service/listing"
	userservice "p2p_market/internal/domain/service/user"
	"p2p_market/internal/infrastructure/jobs"
	"p2p_market/internal/infrastructure/notifier"
	"p2p_market/internal/infrastructure/persistence"
	"p2p_market/internal/server"
	"p2p_market/internal/worker"
	"p2p_market/pkg/application/connectors"
	"p2p_market/pkg/application/modules"
	"p2p_market/pkg/contextx"
	"p2p_market/pkg/logx"
	"p2p_market/pkg/middlewarex"
)

const (
	logFieldMaxLen    = 2048
	readHeaderTimeout = 5 * time.Second
	dealEventsBuffer  = 100
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	userRepo := persistence.NewUserRepository(db)
	listingRepo := persistence.NewListingRepository(db)
	dealRepo := persistence.NewDealRepository(db)
	logRepo := persistence.NewLogRepository(db)

	users := userservice.NewUserService(userRepo)
	listings := listingservice.NewListingService(listingRepo, userRepo)
	deals := dealservice.NewDealService(dealRepo, listingRepo, logRepo, dealservice.Config{
		EscrowWallet:      cfg.Escrow.Wallet,
		CommissionPercent: cfg.Escrow.CommissionPercent,
		ReleaseSecret:     cfg.Escrow.ReleaseSecret,
		PendingTTL:        cfg.Escrow.DealPendingTTL,
	})

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Asynq.RedisAddress != "" {
		scheduler := jobs.NewExpiryScheduler(asynq.RedisClientOpt{
			Addr:     cfg.Asynq.RedisAddress,
			Username: cfg.Asynq.RedisUsername,
			Password: cfg.Asynq.RedisPassword,
			DB:       cfg.Asynq.RedisDB,
		})
		defer scheduler.Close() //nolint:errcheck

		deals = deals.WithExpiryScheduler(scheduler)

		modules.AsynqServer{
			RedisUsername: cfg.Asynq.RedisUsername,
			RedisPassword: cfg.Asynq.RedisPassword,
			RedisAddress:  cfg.Asynq.RedisAddress,
			RedisDB:       cfg.Asynq.RedisDB,
		}.Run(ctx, g,
			modules.AsynqQueues{"default": 1},
			modules.AsynqHandler{
				Pattern: jobs.TaskTypeDealExpire,
				Handle:  worker.NewDealExpirer(deals).Handle,
			},
		)
	}

	if cfg.Bot.Token != "" {
		bot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		events := make(chan entity.DealEvent, dealEventsBuffer)
		deals = deals.WithEvents(events)

		go func() {
			if err := bot.Run(ctx, events); err != nil && ctx.Err() == nil {
				contextx.LoggerFromContextOrDefault(ctx).Error("bot.Run", logx.Error(err))
			}
		}()
	}

	srv := server.NewServer(
		server.NewUserServer(users),
		server.NewListingServer(listings),
		server.NewDealServer(deals, cfg.App.Name, cfg.App.Version),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
