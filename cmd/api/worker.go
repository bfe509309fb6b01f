package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xavierca1/agency-admin/internal/infra/database"
	"github.com/xavierca1/agency-admin/internal/infra/mail"
	"github.com/xavierca1/agency-admin/internal/infra/queue"
	"github.com/xavierca1/agency-admin/internal/infra/worker"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Email provisioning summaries",
		Long:  `Consume client provisioning events from RabbitMQ and email a summary to mail.notify_to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(cmd.Context())
		},
	}
}

func runWorker(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	db.Close()

	if cfg.RabbitMQ.URL == "" {
		return errors.New("rabbitmq.url is not set")
	}
	if !cfg.Mail.Enabled() {
		return errors.New("mail.host is not set")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}
	defer rabbit.Close()

	return queue.NewWorker(rabbit.Ch, mail.NewEmailSender(cfg.Mail)).Start(ctx, queue.QueueName)
}

func newMarkOverdueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Mark past-due PENDING payments as OVERDUE",
		Long:  `Run once and exit. Schedule it externally, e.g. from cron.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := worker.NewOverdueWorker(database.NewPaymentRepository(db)).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("mark overdue failed: %w", err)
			}
			slog.InfoContext(cmd.Context(), "payments marked overdue", "count", n)
			return nil
		},
	}
}
