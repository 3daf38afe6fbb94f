package vouchers

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows voucher listings.
type ListFilter struct {
	Type     *VoucherType
	Status   *VoucherStatus
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PerPage  int
}

// RepositoryPort abstracts transactional repository behaviour.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	GetWithEntries(ctx context.Context, id int64) (Voucher, error)
	List(ctx context.Context, filter ListFilter) ([]Voucher, int, error)
}

// TxRepository exposes the operations available inside a posting transaction.
type TxRepository interface {
	NextVoucherSeq(ctx context.Context) (int64, error)
	InsertVoucher(ctx context.Context, in PostingInput, number string) (Voucher, error)
	InsertEntries(ctx context.Context, voucherID int64, lines []PostingLineInput) ([]JournalEntry, error)
	LinkSource(ctx context.Context, module string, ref uuid.UUID, voucherID int64) error
	GetVoucher(ctx context.Context, id int64) (Voucher, error)
	UpdateVoucherStatus(ctx context.Context, id int64, status VoucherStatus) error
}
