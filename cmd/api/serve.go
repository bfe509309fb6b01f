package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xavierca1/agency-admin/internal/infra/database"
	"github.com/xavierca1/agency-admin/internal/infra/http/handlers"
	"github.com/xavierca1/agency-admin/internal/infra/queue"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

func newServeCommand() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), autoMigrate)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, autoMigrate bool) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	} else if pending, err := migrator.Pending(ctx); err != nil {
		slog.WarnContext(ctx, "failed to check migration status", "error", err)
	} else if pending {
		slog.WarnContext(ctx, "database has pending migrations, run `migrate up`")
	}

	clientRepo := database.NewClientRepository(db)
	serviceRepo := database.NewServiceRepository(db)
	planRepo := database.NewPlanRepository(db)
	contractRepo := database.NewContractRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	txManager := database.NewTxManager(db)

	provisionUC := usecase.NewProvisionClientUseCase(txManager, clientRepo, serviceRepo, planRepo, contractRepo, paymentRepo, nil)

	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			// Events are best effort; the API runs without them.
			slog.ErrorContext(ctx, "rabbitmq unavailable, provisioning events disabled", "error", err)
		} else {
			defer rabbit.Close()
			provisionUC.Events = queue.NewProducer(rabbit.Ch)
		}
	}

	deps := routerDeps{
		Clients:   handlers.NewClientHandler(usecase.NewClientUseCase(clientRepo), provisionUC),
		Services:  handlers.NewServiceHandler(usecase.NewServiceUseCase(txManager, serviceRepo, planRepo)),
		Contracts: handlers.NewContractHandler(usecase.NewContractUseCase(contractRepo, clientRepo, serviceRepo, planRepo)),
		Payments:  handlers.NewPaymentHandler(usecase.NewPaymentUseCase(paymentRepo, contractRepo)),
		Dashboard: handlers.NewDashboardHandler(usecase.NewDashboardUseCase(database.NewStatsRepository(db))),
		Auth:      handlers.NewAuthHandler(usecase.NewAuthUseCase(database.NewUserRepository(db)), cfg.Server.CookieSecure),
		Health:    handlers.NewHealthHandler(db, nil, version),

		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if rabbit != nil {
		deps.Health.RabbitMQ = rabbit.Conn
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "server starting", "address", srv.Addr, "mode", cfg.Server.Mode, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
