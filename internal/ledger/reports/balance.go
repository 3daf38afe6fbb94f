package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

// ComputeBalance folds summed debits and credits into a signed balance
// using the account type's natural side. Debit-normal types read
// debits-credits, credit-normal types read credits-debits; a negative
// natural balance flips the reported side and the magnitude stays
// non-negative.
func ComputeBalance(account accounts.Account, debits, credits decimal.Decimal, asOf *time.Time) (Balance, error) {
	side, err := account.Type.NormalSide()
	if err != nil {
		return Balance{}, err
	}
	natural := debits.Sub(credits)
	if side == accounts.SideCredit {
		natural = credits.Sub(debits)
	}
	reported := side
	if natural.IsNegative() {
		reported = side.Opposite()
	}
	return Balance{
		AccountID:    account.ID,
		AccountName:  account.Name,
		AccountType:  account.Type,
		TotalDebits:  debits,
		TotalCredits: credits,
		Amount:       natural.Abs(),
		Side:         reported,
		AsOf:         asOf,
	}, nil
}
