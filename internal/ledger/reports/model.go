package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

// AccountTotals pairs an account with its summed posted debit and credit
// amounts over some date window. All report builders start from this shape.
type AccountTotals struct {
	Account accounts.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Balance is a single account's signed balance. Amount is always
// non-negative; Side carries the sign's meaning.
type Balance struct {
	AccountID    int64                `json:"account_id"`
	AccountName  string               `json:"account_name"`
	AccountType  accounts.AccountType `json:"account_type"`
	TotalDebits  decimal.Decimal      `json:"total_debits"`
	TotalCredits decimal.Decimal      `json:"total_credits"`
	Amount       decimal.Decimal      `json:"balance"`
	Side         accounts.BalanceSide `json:"balance_type"`
	AsOf         *time.Time           `json:"as_of,omitempty"`
}

// TrialBalanceRow is one non-zero account line of the trial balance.
type TrialBalanceRow struct {
	AccountID   int64                `json:"account_id"`
	AccountName string               `json:"account_name"`
	AccountType accounts.AccountType `json:"account_type"`
	Amount      decimal.Decimal      `json:"balance"`
	Side        accounts.BalanceSide `json:"balance_type"`
}

// TrialBalance sums every active account's balance and checks that total
// debits equal total credits. An imbalance signals upstream corruption; it
// never blocks the read.
type TrialBalance struct {
	AsOf        *time.Time        `json:"as_of,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
	Difference  decimal.Decimal   `json:"difference"`
	IsBalanced  bool              `json:"is_balanced"`
}

// AccountAmount is an account with a net amount, used by P&L and the
// balance sheet.
type AccountAmount struct {
	AccountID int64           `json:"account_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLoss reports income from customer accounts against direct and
// indirect expense accounts over a period.
type ProfitLoss struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Income       []AccountAmount `json:"income"`
	Expenses     []AccountAmount `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// BalanceSheet reports assets against liabilities and equity as of a date.
type BalanceSheet struct {
	AsOf             time.Time       `json:"as_of"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// GeneralLedgerLine is one transaction of an account's ledger with the
// running balance after it.
type GeneralLedgerLine struct {
	VoucherID      int64                `json:"voucher_id"`
	VoucherNumber  string               `json:"voucher_number"`
	VoucherType    vouchers.VoucherType `json:"voucher_type"`
	Date           time.Time            `json:"date"`
	Narration      string               `json:"narration,omitempty"`
	Debit          decimal.Decimal      `json:"debit"`
	Credit         decimal.Decimal      `json:"credit"`
	RunningBalance decimal.Decimal      `json:"running_balance"`
}

// GeneralLedger is an account's transaction history over a period. Opening,
// running, and closing balances are signed as debits minus credits.
type GeneralLedger struct {
	AccountID      int64                `json:"account_id"`
	AccountName    string               `json:"account_name"`
	AccountType    accounts.AccountType `json:"account_type"`
	From           time.Time            `json:"from"`
	To             time.Time            `json:"to"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	Lines          []GeneralLedgerLine  `json:"transactions"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// CashFlow partitions posted vouchers by type into receipts and payments.
type CashFlow struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	TotalReceipts decimal.Decimal `json:"total_receipts"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
}
