// Package audit cross-checks the whole ledger for balance violations.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stationbooks/stationbooks/internal/ledger/reports"
	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// Issue codes reported by the auditor.
const (
	IssueTrialBalanceImbalance = "TRIAL_BALANCE_IMBALANCE"
	IssueVoucherImbalance      = "VOUCHER_IMBALANCE"
)

// VoucherTotals carries a posted voucher's summed entry amounts.
type VoucherTotals struct {
	ID     int64
	Number string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Repository reads the raw aggregates the auditor re-checks.
type Repository interface {
	ListPostedVoucherTotals(ctx context.Context) ([]VoucherTotals, error)
}

// TrialBalancer is the slice of the reporting engine the auditor composes.
type TrialBalancer interface {
	TrialBalance(ctx context.Context, asOf *time.Time) (reports.TrialBalance, error)
}

// Issue is one anomaly found in the ledger.
type Issue struct {
	Code          string `json:"code"`
	Detail        string `json:"detail"`
	VoucherID     int64  `json:"voucher_id,omitempty"`
	VoucherNumber string `json:"voucher_number,omitempty"`
}

// Result is the advisory audit outcome. Findings are data, never errors,
// so broken past data can still be inspected.
type Result struct {
	IsValid      bool                 `json:"is_valid"`
	Issues       []Issue              `json:"issues"`
	TrialBalance reports.TrialBalance `json:"trial_balance"`
	CheckedAt    time.Time            `json:"checked_at"`
}

// Auditor validates ledger-wide invariants without mutating anything.
type Auditor struct {
	reports   TrialBalancer
	repo      Repository
	tolerance decimal.Decimal
	now       func() time.Time
}

// NewAuditor constructs the integrity auditor.
func NewAuditor(reports TrialBalancer, repo Repository, tolerance decimal.Decimal) *Auditor {
	if tolerance.IsZero() {
		tolerance = shared.DefaultBalanceTolerance
	}
	return &Auditor{reports: reports, repo: repo, tolerance: tolerance, now: time.Now}
}

// WithNow overrides the clock for testing.
func (a *Auditor) WithNow(now func() time.Time) {
	if now != nil {
		a.now = now
	}
}

// Validate runs the trial-balance check and re-validates every posted
// voucher's own entries against the debit=credit invariant, guarding
// against rows mutated outside the posting engine. Storage failures are
// errors; anomalies are reported in the result.
func (a *Auditor) Validate(ctx context.Context) (Result, error) {
	var (
		tb       reports.TrialBalance
		vouchers []VoucherTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tb, err = a.reports.TrialBalance(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		vouchers, err = a.repo.ListPostedVoucherTotals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{
		Issues:       []Issue{},
		TrialBalance: tb,
		CheckedAt:    a.now(),
	}
	if !tb.IsBalanced {
		result.Issues = append(result.Issues, Issue{
			Code: IssueTrialBalanceImbalance,
			Detail: fmt.Sprintf("trial balance off by %s (debits %s, credits %s)",
				tb.Difference, tb.TotalDebit, tb.TotalCredit),
		})
	}
	for _, v := range vouchers {
		diff := v.Debit.Sub(v.Credit).Abs()
		if diff.GreaterThanOrEqual(a.tolerance) {
			result.Issues = append(result.Issues, Issue{
				Code:          IssueVoucherImbalance,
				Detail:        fmt.Sprintf("voucher %s off by %s (debits %s, credits %s)", v.Number, diff, v.Debit, v.Credit),
				VoucherID:     v.ID,
				VoucherNumber: v.Number,
			})
		}
	}
	result.IsValid = len(result.Issues) == 0
	return result, nil
}
