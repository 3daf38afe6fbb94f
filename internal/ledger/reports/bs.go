package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

// BuildBalanceSheet aggregates as-of totals into assets, liabilities, and a
// synthesized equity section. Retained earnings is the full-history net
// profit through the as-of date, floored at zero; prior distributions are
// not subtracted.
func BuildBalanceSheet(totals []AccountTotals, retainedEarnings decimal.Decimal, asOf time.Time) BalanceSheet {
	bs := BalanceSheet{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, t := range totals {
		switch t.Account.Type {
		case accounts.TypeAsset:
			net := t.Debit.Sub(t.Credit)
			if net.IsPositive() {
				bs.Assets = append(bs.Assets, AccountAmount{AccountID: t.Account.ID, Name: t.Account.Name, Amount: net})
				bs.TotalAssets = bs.TotalAssets.Add(net)
			}
		case accounts.TypeLiability:
			net := t.Credit.Sub(t.Debit)
			if net.IsPositive() {
				bs.Liabilities = append(bs.Liabilities, AccountAmount{AccountID: t.Account.ID, Name: t.Account.Name, Amount: net})
				bs.TotalLiabilities = bs.TotalLiabilities.Add(net)
			}
		}
	}
	if retainedEarnings.IsNegative() {
		retainedEarnings = decimal.Zero
	}
	bs.Equity = append(bs.Equity, AccountAmount{Name: "Retained Earnings", Amount: retainedEarnings})
	bs.TotalEquity = retainedEarnings
	return bs
}
