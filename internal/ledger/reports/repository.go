package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

// Repository is the read-only query surface the reporting engine composes.
// Every query sees only entries whose owning voucher is Posted.
type Repository interface {
	GetAccount(ctx context.Context, id int64) (accounts.Account, error)
	AccountTotals(ctx context.Context, accountID int64, asOf *time.Time) (debit, credit decimal.Decimal, err error)
	ListAccountTotals(ctx context.Context, asOf *time.Time) ([]AccountTotals, error)
	ListAccountTotalsBetween(ctx context.Context, from, to time.Time) ([]AccountTotals, error)
	OpeningTotals(ctx context.Context, accountID int64, before time.Time) (debit, credit decimal.Decimal, err error)
	ListEntriesBetween(ctx context.Context, accountID int64, from, to time.Time) ([]GeneralLedgerLine, error)
	VoucherTotalsByType(ctx context.Context, from, to time.Time) (map[vouchers.VoucherType]decimal.Decimal, error)
}
