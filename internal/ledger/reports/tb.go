package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

// BuildTrialBalance converts per-account totals into the trial balance.
// Zero balances are dropped; debit-side and credit-side balances are summed
// separately and compared within the tolerance.
func BuildTrialBalance(totals []AccountTotals, asOf *time.Time, tolerance decimal.Decimal) (TrialBalance, error) {
	tb := TrialBalance{
		AsOf:        asOf,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, t := range totals {
		balance, err := ComputeBalance(t.Account, t.Debit, t.Credit, asOf)
		if err != nil {
			return TrialBalance{}, err
		}
		if balance.Amount.IsZero() {
			continue
		}
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID:   balance.AccountID,
			AccountName: balance.AccountName,
			AccountType: balance.AccountType,
			Amount:      balance.Amount,
			Side:        balance.Side,
		})
		if balance.Side == accounts.SideDebit {
			tb.TotalDebit = tb.TotalDebit.Add(balance.Amount)
		} else {
			tb.TotalCredit = tb.TotalCredit.Add(balance.Amount)
		}
	}
	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit).Abs()
	tb.IsBalanced = tb.Difference.LessThan(tolerance)
	return tb, nil
}
