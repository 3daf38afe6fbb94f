package accounts

import (
	"fmt"
	"time"
)

// AccountType enumerates chart of accounts categories.
type AccountType string

const (
	TypeAsset           AccountType = "ASSET"
	TypeLiability       AccountType = "LIABILITY"
	TypeCustomer        AccountType = "CUSTOMER"
	TypeVendor          AccountType = "VENDOR"
	TypeBank            AccountType = "BANK"
	TypeDirectExpense   AccountType = "DIRECT_EXPENSE"
	TypeIndirectExpense AccountType = "INDIRECT_EXPENSE"
)

// AccountTypes lists every valid account type.
func AccountTypes() []AccountType {
	return []AccountType{
		TypeAsset,
		TypeLiability,
		TypeCustomer,
		TypeVendor,
		TypeBank,
		TypeDirectExpense,
		TypeIndirectExpense,
	}
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeCustomer, TypeVendor, TypeBank, TypeDirectExpense, TypeIndirectExpense:
		return true
	}
	return false
}

// BalanceSide identifies the debit or credit column of the ledger.
type BalanceSide string

const (
	SideDebit  BalanceSide = "DEBIT"
	SideCredit BalanceSide = "CREDIT"
)

// Opposite returns the other balance side.
func (s BalanceSide) Opposite() BalanceSide {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// NormalSide returns the side on which the account type carries its
// natural balance. Every account type must declare its convention here;
// an unknown type is an error, never a silent default.
func (t AccountType) NormalSide() (BalanceSide, error) {
	switch t {
	case TypeAsset, TypeBank, TypeDirectExpense, TypeIndirectExpense:
		return SideDebit, nil
	case TypeLiability, TypeCustomer, TypeVendor:
		return SideCredit, nil
	}
	return "", fmt.Errorf("ledger: account type %q has no balance convention", t)
}

// AccountStatus enumerates account activation states.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Account models a chart of accounts entry. System accounts are seeded by
// the application; their name and type are immutable and they can only be
// deactivated, never deleted.
type Account struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Type      AccountType   `json:"type"`
	Status    AccountStatus `json:"status"`
	IsSystem  bool          `json:"is_system"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
