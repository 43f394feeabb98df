// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// RefundRetryJob runs every second and drains the refund outbox: pending
// refunds are handed to the refund service and marked completed on success
// or kept for retry on failure. Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(outbox, refundService, batchSize, maxAttempts, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
