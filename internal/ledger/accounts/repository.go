package accounts

import "context"

// Filter narrows account listings.
type Filter struct {
	Type     *AccountType
	Status   *AccountStatus
	IsSystem *bool
}

// Repository persists chart of accounts entries.
type Repository interface {
	Insert(ctx context.Context, account Account) (Account, error)
	List(ctx context.Context, filter Filter) ([]Account, error)
	Get(ctx context.Context, id int64) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountEntries(ctx context.Context, accountID int64) (int64, error)
	ActiveNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}
