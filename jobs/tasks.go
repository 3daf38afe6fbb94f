// Package jobs wires background ledger maintenance onto Asynq.
package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity runs the whole-ledger integrity audit.
	TaskLedgerIntegrity = "ledger:integrity_audit"
	// TaskReportsWarmup pre-builds the most requested reports.
	TaskReportsWarmup = "ledger:reports_warmup"
)

// NewLedgerIntegrityTask constructs the integrity audit task.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}

// NewReportsWarmupTask constructs the report warmup task.
func NewReportsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskReportsWarmup, nil)
}
