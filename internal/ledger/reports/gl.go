package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
)

// BuildGeneralLedger walks an account's entries in (voucher date, voucher
// id) order, accumulating a signed running balance of debits minus credits
// on top of the opening balance.
func BuildGeneralLedger(account accounts.Account, openingDebit, openingCredit decimal.Decimal, lines []GeneralLedgerLine, from, to time.Time) GeneralLedger {
	gl := GeneralLedger{
		AccountID:      account.ID,
		AccountName:    account.Name,
		AccountType:    account.Type,
		From:           from,
		To:             to,
		OpeningBalance: openingDebit.Sub(openingCredit),
	}
	running := gl.OpeningBalance
	for _, line := range lines {
		running = running.Add(line.Debit).Sub(line.Credit)
		line.RunningBalance = running
		gl.Lines = append(gl.Lines, line)
	}
	gl.ClosingBalance = running
	return gl
}
