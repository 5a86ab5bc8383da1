package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/healthcoach/internal"
	api "github.com/yourname/healthcoach/internal/api"
	"github.com/yourname/healthcoach/internal/config"
	"github.com/yourname/healthcoach/internal/reminder"
	"github.com/yourname/healthcoach/internal/service"
	"github.com/yourname/healthcoach/internal/storage"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *internal.ZapLogger) error {
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Infof("storage backend %s ready", cfg.StorageBackend)

	coach := service.NewCoach(store, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewApp(coach, logger, nil)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	poller := &reminder.Poller{
		Source:   store,
		Interval: cfg.ReminderPoll,
		Logger:   logger.With("component", "reminders"),
		Notify: func(_ context.Context, userID uint64, r internal.ReminderSpec) {
			logger.Infof("reminder due for user %d: %s", userID, r.Text)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Server running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := poller.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
