package worker

import (
	"context"
	"log/slog"
	"time"
)

// OverdueMarker is implemented by the payment repository.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error)
}

// OverdueWorker moves PENDING payments past their due date to OVERDUE.
// It runs once per invocation; scheduling is left to the caller (cron, CI).
type OverdueWorker struct {
	payments OverdueMarker
	now      func() time.Time
}

func NewOverdueWorker(payments OverdueMarker) *OverdueWorker {
	return &OverdueWorker{
		payments: payments,
		now:      time.Now,
	}
}

// Run uses the start of the current day, so a payment due today stays
// PENDING until tomorrow.
func (w *OverdueWorker) Run(ctx context.Context) (int, error) {
	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	ids, err := w.payments.MarkOverdue(ctx, today)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark overdue payments", "error", err)
		return 0, err
	}

	for _, id := range ids {
		slog.InfoContext(ctx, "payment overdue", "payment_id", id)
	}
	slog.InfoContext(ctx, "overdue sweep finished", "count", len(ids), "as_of", today.Format(time.DateOnly))
	return len(ids), nil
}
