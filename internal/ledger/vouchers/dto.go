package vouchers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// PostingLineInput describes one journal entry of a posting request.
type PostingLineInput struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Narration string
}

// PostingInput groups the fields required to post a voucher. SourceModule
// and SourceID optionally link the voucher to an upstream document
// (purchase invoice, sale, credit settlement) for idempotent posting.
type PostingInput struct {
	Type         VoucherType
	Date         time.Time
	Narration    string
	SourceModule string
	SourceID     uuid.UUID
	Lines        []PostingLineInput
}

// Validate rejects unbalanced or malformed postings before any write.
// The tolerance bounds the acceptable |debits - credits| difference.
func (in PostingInput) Validate(tolerance decimal.Decimal) error {
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown voucher type %q", shared.ErrValidation, in.Type)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: voucher date is required", shared.ErrValidation)
	}
	if len(in.Lines) < 1 {
		return fmt.Errorf("%w: voucher requires at least one entry", shared.ErrValidation)
	}
	debit, credit := decimal.Zero, decimal.Zero
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("%w: entry %d missing account", shared.ErrValidation, idx)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: entry %d has a negative amount", shared.ErrValidation, idx)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("%w: entry %d must have exactly one of debit or credit positive", shared.ErrValidation, idx)
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	if diff := debit.Sub(credit).Abs(); diff.GreaterThanOrEqual(tolerance) {
		return fmt.Errorf("%w: debits %s, credits %s, difference %s", shared.ErrUnbalanced, debit, credit, diff)
	}
	if in.SourceModule != "" && in.SourceID == uuid.Nil {
		return fmt.Errorf("%w: source id required when source module is set", shared.ErrValidation)
	}
	return nil
}

// TotalDebits sums the debit legs; the voucher total is derived from it.
func (in PostingInput) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range in.Lines {
		total = total.Add(line.Debit)
	}
	return total
}
