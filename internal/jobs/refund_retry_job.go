package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RefundRetryJob drains the refund outbox on a schedule. Each tick loads a
// batch of pending refunds, hands them to the refund service, and marks them
// completed or failed. A failed refund stays in the outbox with an
// incremented attempt counter and is picked up again on a later tick.
type RefundRetryJob struct {
	outbox        ports.RefundOutbox
	refundService ports.RefundService
	batchSize     int
	maxAttempts   int
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewRefundRetryJob creates a job that retries pending refunds every second.
// batchSize bounds the number of refunds processed per tick; refunds that
// failed maxAttempts times are skipped and logged for operator attention.
func NewRefundRetryJob(
	outbox ports.RefundOutbox,
	refundService ports.RefundService,
	batchSize int,
	maxAttempts int,
	logger *slog.Logger,
) *RefundRetryJob {
	return &RefundRetryJob{
		outbox:        outbox,
		refundService: refundService,
		batchSize:     batchSize,
		maxAttempts:   maxAttempts,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "refund_retry_job"),
	}
}

// Start begins the refund retry job to run every second.
func (j *RefundRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.processBatch(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refund retry job started (running every second)")
	return nil
}

// Stop stops the refund retry job.
func (j *RefundRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Refund retry job stopped")
}

func (j *RefundRetryJob) processBatch(ctx context.Context) {
	refunds, err := j.outbox.GetPending(ctx, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load pending refunds", "error", err)
		return
	}

	for _, refund := range refunds {
		if refund.Attempts >= j.maxAttempts {
			j.logger.WarnContext(ctx, "Refund exhausted retry attempts",
				"refund_id", refund.ID.String(),
				"order_id", refund.OrderID.String(),
				"attempts", refund.Attempts,
			)
			continue
		}

		if err = j.refundService.Refund(ctx, refund); err != nil {
			j.logger.ErrorContext(ctx, "Refund attempt failed",
				"refund_id", refund.ID.String(),
				"order_id", refund.OrderID.String(),
				"attempt", refund.Attempts+1,
				"error", err,
			)
			if markErr := j.outbox.MarkFailed(ctx, refund.ID); markErr != nil {
				j.logger.ErrorContext(ctx, "Failed to record refund attempt", "error", markErr)
			}
			continue
		}

		if err = j.outbox.MarkCompleted(ctx, refund.ID); err != nil {
			j.logger.ErrorContext(ctx, "Failed to mark refund completed", "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Refund delivered",
			"refund_id", refund.ID.String(),
			"order_id", refund.OrderID.String(),
			"amount_cents", refund.AmountCents,
		)
	}
}
