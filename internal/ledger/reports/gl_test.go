package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

func TestBuildGeneralLedgerRunningBalance(t *testing.T) {
	// Credit-natural customer account: credit 300 on day 1, debit 100 on
	// day 2. The signed running balance is debits minus credits throughout.
	account := acct(1, "PT Trans Logistik", accounts.TypeCustomer)
	from, to := day(2026, time.May, 1), day(2026, time.May, 31)
	lines := []GeneralLedgerLine{
		{VoucherID: 1, VoucherNumber: "RV-000001", VoucherType: vouchers.TypeReceipt, Date: day(2026, time.May, 1), Debit: dec("0"), Credit: dec("300.00")},
		{VoucherID: 2, VoucherNumber: "PV-000002", VoucherType: vouchers.TypePayment, Date: day(2026, time.May, 2), Debit: dec("100.00"), Credit: dec("0")},
	}

	gl := BuildGeneralLedger(account, dec("0"), dec("0"), lines, from, to)

	assert.True(t, gl.OpeningBalance.IsZero())
	require.Len(t, gl.Lines, 2)
	assert.True(t, gl.Lines[0].RunningBalance.Equal(dec("-300.00")))
	assert.True(t, gl.Lines[1].RunningBalance.Equal(dec("-200.00")))
	assert.True(t, gl.ClosingBalance.Equal(dec("-200.00")))
}

func TestBuildGeneralLedgerOpeningBalance(t *testing.T) {
	account := acct(2, "Bank BCA", accounts.TypeBank)
	from, to := day(2026, time.May, 1), day(2026, time.May, 31)
	lines := []GeneralLedgerLine{
		{VoucherID: 3, VoucherNumber: "PV-000003", VoucherType: vouchers.TypePayment, Date: day(2026, time.May, 10), Debit: dec("0"), Credit: dec("400.00")},
	}

	gl := BuildGeneralLedger(account, dec("2500.00"), dec("500.00"), lines, from, to)

	assert.True(t, gl.OpeningBalance.Equal(dec("2000.00")))
	assert.True(t, gl.ClosingBalance.Equal(dec("1600.00")))
}

func TestBuildGeneralLedgerNoTransactions(t *testing.T) {
	account := acct(3, "Cash", accounts.TypeAsset)
	from, to := day(2026, time.May, 1), day(2026, time.May, 31)

	gl := BuildGeneralLedger(account, dec("750.00"), dec("0"), nil, from, to)

	assert.Empty(t, gl.Lines)
	assert.True(t, gl.ClosingBalance.Equal(gl.OpeningBalance))
}

// For debit-natural accounts the general ledger closing balance and the
// account balance report must agree on the same entries.
func TestGeneralLedgerClosingMatchesAccountBalance(t *testing.T) {
	account := acct(4, "Fuel Stock", accounts.TypeAsset)
	from, to := day(2026, time.May, 1), day(2026, time.May, 31)
	lines := []GeneralLedgerLine{
		{VoucherID: 1, Date: day(2026, time.May, 3), Debit: dec("1200.00"), Credit: dec("0")},
		{VoucherID: 2, Date: day(2026, time.May, 9), Debit: dec("0"), Credit: dec("450.00")},
		{VoucherID: 3, Date: day(2026, time.May, 20), Debit: dec("75.50"), Credit: dec("0")},
	}

	gl := BuildGeneralLedger(account, dec("0"), dec("0"), lines, from, to)

	totalDebit, totalCredit := dec("0"), dec("0")
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	balance, err := ComputeBalance(account, totalDebit, totalCredit, &to)
	require.NoError(t, err)

	assert.Equal(t, accounts.SideDebit, balance.Side)
	assert.True(t, gl.ClosingBalance.Equal(balance.Amount))
}
