package vouchers

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType enumerates the kinds of posted transactions.
type VoucherType string

const (
	TypePayment VoucherType = "PAYMENT"
	TypeReceipt VoucherType = "RECEIPT"
	TypeJournal VoucherType = "JOURNAL"
)

// Valid reports whether t is a known voucher type.
func (t VoucherType) Valid() bool {
	return t == TypePayment || t == TypeReceipt || t == TypeJournal
}

// NumberPrefix returns the human-facing voucher number prefix.
func (t VoucherType) NumberPrefix() string {
	switch t {
	case TypePayment:
		return "PV"
	case TypeReceipt:
		return "RV"
	default:
		return "JV"
	}
}

// VoucherStatus enumerates voucher lifecycle values. Posted is the only
// state reports draw balances from; Cancelled is terminal.
type VoucherStatus string

const (
	StatusPosted    VoucherStatus = "POSTED"
	StatusCancelled VoucherStatus = "CANCELLED"
)

// Voucher is a transaction header owning one or more balanced entries.
type Voucher struct {
	ID          int64           `json:"id"`
	Number      string          `json:"number"`
	Type        VoucherType     `json:"type"`
	Date        time.Time       `json:"date"`
	Narration   string          `json:"narration"`
	Status      VoucherStatus   `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Entries     []JournalEntry  `json:"entries,omitempty"`
}

// JournalEntry is one debit or credit leg of a voucher.
type JournalEntry struct {
	ID        int64           `json:"id"`
	VoucherID int64           `json:"voucher_id"`
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration,omitempty"`
}
