package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

func TestBuildProfitLoss(t *testing.T) {
	from, to := day(2026, time.March, 1), day(2026, time.March, 31)
	totals := []AccountTotals{
		{Account: acct(1, "PT Trans Logistik", accounts.TypeCustomer), Debit: dec("200.00"), Credit: dec("5200.00")},
		{Account: acct(2, "Fuel Purchase", accounts.TypeDirectExpense), Debit: dec("3100.00"), Credit: dec("100.00")},
		{Account: acct(3, "Electricity", accounts.TypeIndirectExpense), Debit: dec("450.00"), Credit: dec("0")},
		// Non-P&L types are ignored entirely.
		{Account: acct(4, "Bank BCA", accounts.TypeBank), Debit: dec("9000.00"), Credit: dec("2000.00")},
		{Account: acct(5, "Bank Loan", accounts.TypeLiability), Debit: dec("0"), Credit: dec("7000.00")},
	}

	pl := BuildProfitLoss(totals, from, to)

	require.Len(t, pl.Income, 1)
	assert.True(t, pl.Income[0].Amount.Equal(dec("5000.00")))
	require.Len(t, pl.Expenses, 2)
	assert.True(t, pl.TotalIncome.Equal(dec("5000.00")))
	assert.True(t, pl.TotalExpense.Equal(dec("3450.00")))
	assert.True(t, pl.NetProfit.Equal(dec("1550.00")))
}

func TestBuildProfitLossDropsNonPositiveNets(t *testing.T) {
	from, to := day(2026, time.March, 1), day(2026, time.March, 31)
	totals := []AccountTotals{
		// Customer refunded more than they were billed: not income.
		{Account: acct(1, "CV Armada Jaya", accounts.TypeCustomer), Debit: dec("500.00"), Credit: dec("300.00")},
		// Expense fully reversed: not an expense line.
		{Account: acct(2, "Transport Cost", accounts.TypeDirectExpense), Debit: dec("250.00"), Credit: dec("250.00")},
	}

	pl := BuildProfitLoss(totals, from, to)

	assert.Empty(t, pl.Income)
	assert.Empty(t, pl.Expenses)
	assert.True(t, pl.NetProfit.IsZero())
}

func TestBuildProfitLossCanBeNegative(t *testing.T) {
	from, to := day(2026, time.March, 1), day(2026, time.March, 31)
	totals := []AccountTotals{
		{Account: acct(1, "PT Trans Logistik", accounts.TypeCustomer), Debit: dec("0"), Credit: dec("1000.00")},
		{Account: acct(2, "Salary Expense", accounts.TypeIndirectExpense), Debit: dec("4000.00"), Credit: dec("0")},
	}

	pl := BuildProfitLoss(totals, from, to)
	assert.True(t, pl.NetProfit.Equal(dec("-3000.00")))
}
