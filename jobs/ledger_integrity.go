package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/stationbooks/stationbooks/internal/ledger/audit"
)

// LedgerIntegrityJob runs the integrity auditor on a schedule and logs
// every anomaly so imbalances surface without anyone opening a dashboard.
type LedgerIntegrityJob struct {
	auditor *audit.Auditor
	logger  *slog.Logger
}

// NewLedgerIntegrityJob constructs the job.
func NewLedgerIntegrityJob(auditor *audit.Auditor, logger *slog.Logger) *LedgerIntegrityJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerIntegrityJob{auditor: auditor, logger: logger}
}

// Handle processes TaskLedgerIntegrity tasks.
func (j *LedgerIntegrityJob) Handle(ctx context.Context, _ *asynq.Task) error {
	result, err := j.auditor.Validate(ctx)
	if err != nil {
		return err
	}
	if result.IsValid {
		j.logger.Info("ledger integrity audit passed",
			slog.Time("checked_at", result.CheckedAt),
			slog.Int("accounts", len(result.TrialBalance.Rows)),
		)
		return nil
	}
	for _, issue := range result.Issues {
		j.logger.Warn("ledger integrity issue",
			slog.String("code", issue.Code),
			slog.String("detail", issue.Detail),
			slog.String("voucher_number", issue.VoucherNumber),
		)
	}
	return nil
}
