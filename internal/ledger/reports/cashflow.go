package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

// BuildCashFlow partitions posted voucher totals into receipts and
// payments. Journal vouchers do not move cash and are excluded.
func BuildCashFlow(totalsByType map[vouchers.VoucherType]decimal.Decimal, from, to time.Time) CashFlow {
	receipts, ok := totalsByType[vouchers.TypeReceipt]
	if !ok {
		receipts = decimal.Zero
	}
	payments, ok := totalsByType[vouchers.TypePayment]
	if !ok {
		payments = decimal.Zero
	}
	return CashFlow{
		From:          from,
		To:            to,
		TotalReceipts: receipts,
		TotalPayments: payments,
		NetCashFlow:   receipts.Sub(payments),
	}
}
