// cmd/form-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"cac-forms/internal/common/config"
	"cac-forms/internal/common/database"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/notify"
	"cac-forms/internal/common/observability"
	"cac-forms/internal/server"
	"cac-forms/internal/store"
	"cac-forms/internal/submissions"
	"cac-forms/internal/submissions/donation"
	"cac-forms/internal/submissions/helprequest"
	"cac-forms/internal/submissions/mailinglist"
	"cac-forms/internal/submissions/volunteer"
	"cac-forms/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
// The delay doubles up to maxDelay; a cancelled ctx stops the retries.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay, maxDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, i+1, err)
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// connectStore opens one logical store and waits for it to answer a ping.
func connectStore(ctx context.Context, name string, cfg config.PostgresConfig, zapLog *zap.Logger) *database.PostgresClient {
	var pg *database.PostgresClient
	err := retryWithBackoff(ctx, func() error {
		var err error
		pg, err = database.NewPostgres(name, cfg)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return err
		}
		return nil
	}, 10, time.Second, 30*time.Second, zapLog, fmt.Sprintf("PostgreSQL %s store connection", name))

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.String("store", name), zap.Error(err))
	}
	zapLog.Info("PostgreSQL store connected", zap.String("store", name), zap.String("host", cfg.Host))
	return pg
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting form server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	flows := registry.Default()
	if cfg.App.RegistryPath != "" {
		flows, err = registry.LoadRegistry(cfg.App.RegistryPath)
		if err != nil {
			zapLog.Fatal("flow registry load failed", zap.String("path", cfg.App.RegistryPath), zap.Error(err))
		}
		if err := flows.Validate(); err != nil {
			zapLog.Fatal("flow registry invalid", zap.Error(err))
		}
	}

	// --- Init the three logical stores ---
	helpPG := connectStore(ctx, store.StoreHelp, cfg.Database.Help, zapLog)
	defer helpPG.Close()
	supportPG := connectStore(ctx, store.StoreSupport, cfg.Database.Support, zapLog)
	defer supportPG.Close()
	mailingPG := connectStore(ctx, store.StoreMailingList, cfg.Database.MailingList, zapLog)
	defer mailingPG.Close()

	helpStore := store.NewHelpRequestStore(helpPG.DB, log)
	supportStore := store.NewSupportStore(supportPG.DB, log)
	mailingStore := store.NewMailingListStore(mailingPG.DB, log)

	// --- Staff alerts ---
	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}
	zapLog.Info("Staff alerts configured",
		zap.Bool("email", cfg.Notifications.Email.Enabled),
		zap.Bool("sms", cfg.Notifications.SMS.Enabled),
	)

	deps := submissions.Deps{
		Logger:        log,
		Observability: obs,
		Notifier:      notifier,
	}

	handlers := []*submissions.Endpoint{
		helprequest.NewHandler(helpStore, deps).Endpoint,
		volunteer.NewHandler(supportStore, deps).Endpoint,
		donation.NewHandler(supportStore, deps).Endpoint,
		mailinglist.NewHandler(mailingStore, deps).Endpoint,
	}
	flowHandlers := make([]server.FlowHandler, 0, len(handlers))
	for _, h := range handlers {
		flowHandlers = append(flowHandlers, h)
	}

	router := server.NewRouter(server.Options{
		Logger:   log,
		Handlers: flowHandlers,
		Stores:   []server.Pinger{helpStore, supportStore, mailingStore},
		Registry: flows,
	})

	srv := server.New(cfg.Server, router, log)
	runErr := srv.Run(ctx)

	// Pending staff alerts finish within submissions.AlertTimeout.
	for _, h := range handlers {
		h.WaitAlerts()
	}

	if runErr != nil {
		zapLog.Error("form server stopped with error", zap.Error(runErr))
		return
	}

	zapLog.Info("Form server stopped gracefully")
}
