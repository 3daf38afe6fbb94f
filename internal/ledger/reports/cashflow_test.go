package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

func TestBuildCashFlow(t *testing.T) {
	from, to := day(2026, time.April, 1), day(2026, time.April, 30)
	totals := map[vouchers.VoucherType]decimal.Decimal{
		vouchers.TypeReceipt: dec("9200.00"),
		vouchers.TypePayment: dec("6100.00"),
		vouchers.TypeJournal: dec("50000.00"), // non-cash, ignored
	}

	cf := BuildCashFlow(totals, from, to)

	assert.True(t, cf.TotalReceipts.Equal(dec("9200.00")))
	assert.True(t, cf.TotalPayments.Equal(dec("6100.00")))
	assert.True(t, cf.NetCashFlow.Equal(dec("3100.00")))
}

func TestBuildCashFlowEmptyPeriod(t *testing.T) {
	from, to := day(2026, time.April, 1), day(2026, time.April, 30)

	cf := BuildCashFlow(nil, from, to)

	assert.True(t, cf.TotalReceipts.IsZero())
	assert.True(t, cf.TotalPayments.IsZero())
	assert.True(t, cf.NetCashFlow.IsZero())
}
