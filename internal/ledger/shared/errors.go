// Package shared holds ledger-wide sentinel errors and domain constants.
package shared

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation indicates malformed input rejected before any write.
	ErrValidation = errors.New("ledger: validation failed")
	// ErrUnbalanced indicates voucher debits and credits do not match.
	ErrUnbalanced = errors.New("ledger: voucher entries must balance")
	// ErrAccountNotFound indicates an unknown account id.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrVoucherNotFound indicates an unknown voucher id.
	ErrVoucherNotFound = errors.New("ledger: voucher not found")
	// ErrDuplicateName indicates an active account already uses the name.
	ErrDuplicateName = errors.New("ledger: an active account with this name already exists")
	// ErrProtectedAccount indicates deletion of a system account.
	ErrProtectedAccount = errors.New("ledger: system account cannot be deleted, deactivate it instead")
	// ErrAccountHasEntries indicates deletion of an account with journal entries.
	ErrAccountHasEntries = errors.New("ledger: account has journal entries, deactivate it instead")
	// ErrAlreadyCancelled indicates a repeated cancellation.
	ErrAlreadyCancelled = errors.New("ledger: voucher already cancelled")
	// ErrSourceAlreadyLinked indicates idempotency conflict with a source document.
	ErrSourceAlreadyLinked = errors.New("ledger: source document already posted")
	// ErrSourceConflict indicates the source link row already exists.
	ErrSourceConflict = errors.New("ledger: source link conflict")
)

// DefaultBalanceTolerance is the rounding slack allowed when comparing
// debit and credit totals. Overridable via LEDGER_BALANCE_TOLERANCE.
var DefaultBalanceTolerance = decimal.New(1, -2)
