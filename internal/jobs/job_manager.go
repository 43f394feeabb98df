package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	refundRetryJob *RefundRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outbox ports.RefundOutbox,
	refundService ports.RefundService,
	refundBatchSize int,
	refundMaxAttempts int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		refundRetryJob: NewRefundRetryJob(outbox, refundService, refundBatchSize, refundMaxAttempts, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.refundRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start refund retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.refundRetryJob.Stop()
}
