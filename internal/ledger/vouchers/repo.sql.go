package vouchers

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
	"github.com/stationbooks/stationbooks/internal/platform/db"
)

// Repository persists vouchers and their journal entries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed voucher repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes fn within a repeatable-read transaction. Any error rolls
// back every row written inside fn, so partial vouchers are never visible.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("ledger: voucher repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

const voucherColumns = `id, number, type, date, narration, status, total_amount, created_at, updated_at`

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	err := row.Scan(&v.ID, &v.Number, &v.Type, &v.Date, &v.Narration, &v.Status, &v.TotalAmount, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (r *txRepository) NextVoucherSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := r.tx.QueryRow(ctx, `SELECT nextval('voucher_number_seq')`).Scan(&seq)
	return seq, err
}

func (r *txRepository) InsertVoucher(ctx context.Context, in PostingInput, number string) (Voucher, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO vouchers (number, type, date, narration, status, total_amount)
VALUES ($1,$2,$3,$4,'POSTED',$5) RETURNING `+voucherColumns, number, in.Type, in.Date, in.Narration, in.TotalDebits())
	return scanVoucher(row)
}

func (r *txRepository) InsertEntries(ctx context.Context, voucherID int64, lines []PostingLineInput) ([]JournalEntry, error) {
	entries := make([]JournalEntry, 0, len(lines))
	for _, line := range lines {
		var entry JournalEntry
		err := r.tx.QueryRow(ctx, `INSERT INTO journal_entries (voucher_id, account_id, debit, credit, narration)
VALUES ($1,$2,$3,$4,$5) RETURNING id, voucher_id, account_id, debit, credit, narration`,
			voucherID, line.AccountID, line.Debit, line.Credit, line.Narration).
			Scan(&entry.ID, &entry.VoucherID, &entry.AccountID, &entry.Debit, &entry.Credit, &entry.Narration)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *txRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, voucherID int64) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO voucher_source_links (module, ref_id, voucher_id) VALUES ($1,$2,$3)`, module, ref, voucherID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_voucher_source_links" {
			return shared.ErrSourceConflict
		}
		return err
	}
	return nil
}

func (r *txRepository) GetVoucher(ctx context.Context, id int64) (Voucher, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id=$1 FOR UPDATE`, id)
	v, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, shared.ErrVoucherNotFound
		}
		return Voucher{}, err
	}
	return v, nil
}

func (r *txRepository) UpdateVoucherStatus(ctx context.Context, id int64, status VoucherStatus) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrVoucherNotFound
	}
	return nil
}

// GetWithEntries loads a voucher and its entries outside any transaction.
func (r *Repository) GetWithEntries(ctx context.Context, id int64) (Voucher, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE id=$1`, id)
	v, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, shared.ErrVoucherNotFound
		}
		return Voucher{}, err
	}
	rows, err := r.pool.Query(ctx, `SELECT id, voucher_id, account_id, debit, credit, narration
FROM journal_entries WHERE voucher_id=$1 ORDER BY id ASC`, id)
	if err != nil {
		return Voucher{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var entry JournalEntry
		if err := rows.Scan(&entry.ID, &entry.VoucherID, &entry.AccountID, &entry.Debit, &entry.Credit, &entry.Narration); err != nil {
			return Voucher{}, err
		}
		v.Entries = append(v.Entries, entry)
	}
	return v, rows.Err()
}

// List returns vouchers matching the filter, newest first, with the total
// match count for pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Voucher, int, error) {
	where := ` WHERE 1=1`
	args := make([]any, 0, 4)
	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += ` AND type=$` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += ` AND status=$` + strconv.Itoa(len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		where += ` AND date>=$` + strconv.Itoa(len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		where += ` AND date<=$` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vouchers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, perPage, (page-1)*perPage)
	query := `SELECT ` + voucherColumns + ` FROM vouchers` + where +
		` ORDER BY date DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var vouchersOut []Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, 0, err
		}
		vouchersOut = append(vouchersOut, v)
	}
	return vouchersOut, total, rows.Err()
}
