// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution
// schedules and are started and stopped through JobManager:
//
//	audit := jobs.NewReconciliationJob(unreconciledHandler, metrics, cfg.ReconciliationSchedule, 30*time.Second, logger)
//	jobManager := jobs.NewJobManager(audit)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Reconciliation
//
// ReconciliationJob reports orders whose line items do not sum to the order
// amount. The mismatch is informational: orders are never rejected or
// modified because of it, so the job only logs and updates the
// reconciliation gauge.
package jobs
