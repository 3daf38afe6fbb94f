package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

// BuildProfitLoss aggregates period totals into income and expenses.
// Customer accounts act as income sources (credits minus debits), direct
// and indirect expense accounts as expense sources (debits minus credits);
// only positive nets are kept.
func BuildProfitLoss(totals []AccountTotals, from, to time.Time) ProfitLoss {
	pl := ProfitLoss{
		From:         from,
		To:           to,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range totals {
		switch t.Account.Type {
		case accounts.TypeCustomer:
			net := t.Credit.Sub(t.Debit)
			if net.IsPositive() {
				pl.Income = append(pl.Income, AccountAmount{AccountID: t.Account.ID, Name: t.Account.Name, Amount: net})
				pl.TotalIncome = pl.TotalIncome.Add(net)
			}
		case accounts.TypeDirectExpense, accounts.TypeIndirectExpense:
			net := t.Debit.Sub(t.Credit)
			if net.IsPositive() {
				pl.Expenses = append(pl.Expenses, AccountAmount{AccountID: t.Account.ID, Name: t.Account.Name, Amount: net})
				pl.TotalExpense = pl.TotalExpense.Add(net)
			}
		}
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	return pl
}
