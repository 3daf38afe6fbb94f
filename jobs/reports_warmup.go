package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stationbooks/stationbooks/internal/ledger/reports"
)

// ReportsWarmupJob pre-populates the report cache after the version has
// been bumped so the first dashboard hit stays fast.
type ReportsWarmupJob struct {
	service *reports.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewReportsWarmupJob constructs the job.
func NewReportsWarmupJob(service *reports.Service, logger *slog.Logger) *ReportsWarmupJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportsWarmupJob{service: service, logger: logger, now: time.Now}
}

// Handle processes TaskReportsWarmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	now := j.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if _, err := j.service.TrialBalance(ctx, nil); err != nil {
		return err
	}
	if _, err := j.service.ProfitLoss(ctx, monthStart, now); err != nil {
		return err
	}
	if _, err := j.service.CashFlow(ctx, monthStart, now); err != nil {
		return err
	}
	j.logger.Info("report cache warmed", slog.Time("month_start", monthStart))
	return nil
}
