package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tokenorders/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultReconciliationSchedule runs the audit at the top of every minute.
const DefaultReconciliationSchedule = "0 * * * * *"

type UnreconciledOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetUnreconciledOrdersQuery) ([]queries.GetUnreconciledOrdersQueryResponse, error)
}

// ReconciliationObserver receives the result of every audit run.
type ReconciliationObserver interface {
	ObserveReconciliation(unreconciled int, err error)
}

// ReconciliationJob periodically lists orders whose line items do not add up
// to the recorded amount and logs them. It never changes an order.
type ReconciliationJob struct {
	handler  UnreconciledOrdersHandler
	observer ReconciliationObserver
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob uses DefaultReconciliationSchedule when schedule is
// empty. Schedules are six-field cron expressions with seconds.
func NewReconciliationJob(
	handler UnreconciledOrdersHandler,
	observer ReconciliationObserver,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *ReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &ReconciliationJob{
		handler:  handler,
		observer: observer,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the audit.
func (j *ReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running audit to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

// Run performs one audit and returns the unreconciled orders it found.
func (j *ReconciliationJob) Run(ctx context.Context) ([]queries.GetUnreconciledOrdersQueryResponse, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	query, err := queries.NewGetUnreconciledOrdersQuery(0)
	if err != nil {
		return nil, err
	}

	found, err := j.handler.Handle(ctx, query)
	j.observer.ObserveReconciliation(len(found), err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
		return nil, err
	}

	for _, o := range found {
		j.logger.WarnContext(ctx, "Order line items do not match amount",
			"order_id", o.OrderID.String(),
			"account_id", o.AccountID.String(),
			"amount", o.Amount.String(),
			"items_total", o.ItemsTotal.String(),
			"difference", o.Difference().String(),
		)
	}
	j.logger.DebugContext(ctx, "Reconciliation finished", "unreconciled", len(found))
	return found, nil
}
