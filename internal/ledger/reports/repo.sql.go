package reports

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
	"github.com/stationbooks/stationbooks/internal/ledger/shared"
	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed reporting repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetAccount(ctx context.Context, id int64) (accounts.Account, error) {
	var a accounts.Account
	err := r.pool.QueryRow(ctx, `SELECT id, name, type, status, is_system, created_at, updated_at FROM accounts WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.Type, &a.Status, &a.IsSystem, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accounts.Account{}, shared.ErrAccountNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}

func (r *repository) AccountTotals(ctx context.Context, accountID int64, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(je.debit),0), COALESCE(SUM(je.credit),0)
FROM journal_entries je
JOIN vouchers v ON v.id = je.voucher_id
WHERE je.account_id=$1 AND v.status='POSTED'`
	args := []any{accountID}
	if asOf != nil {
		args = append(args, *asOf)
		query += ` AND v.date <= $2`
	}
	var debit, credit decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}

// listTotalsQuery aggregates per-account debits and credits. The voucher
// predicate lives inside the derived table so entries of cancelled or
// out-of-window vouchers never reach the SUMs.
func listTotalsQuery(voucherWhere string) string {
	return `SELECT a.id, a.name, a.type, a.status, a.is_system, a.created_at, a.updated_at,
COALESCE(SUM(je.debit),0), COALESCE(SUM(je.credit),0)
FROM accounts a
LEFT JOIN (
	SELECT je.account_id, je.debit, je.credit
	FROM journal_entries je
	JOIN vouchers v ON v.id = je.voucher_id
	WHERE ` + voucherWhere + `
) je ON je.account_id = a.id
WHERE a.status='ACTIVE'
GROUP BY a.id ORDER BY a.type, a.name`
}

func (r *repository) scanAccountTotals(rows pgx.Rows) ([]AccountTotals, error) {
	defer rows.Close()
	var out []AccountTotals
	for rows.Next() {
		var t AccountTotals
		err := rows.Scan(&t.Account.ID, &t.Account.Name, &t.Account.Type, &t.Account.Status, &t.Account.IsSystem,
			&t.Account.CreatedAt, &t.Account.UpdatedAt, &t.Debit, &t.Credit)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) ListAccountTotals(ctx context.Context, asOf *time.Time) ([]AccountTotals, error) {
	query := listTotalsQuery(`v.status='POSTED'`)
	args := []any{}
	if asOf != nil {
		query = listTotalsQuery(`v.status='POSTED' AND v.date <= $1`)
		args = append(args, *asOf)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.scanAccountTotals(rows)
}

func (r *repository) ListAccountTotalsBetween(ctx context.Context, from, to time.Time) ([]AccountTotals, error) {
	query := listTotalsQuery(`v.status='POSTED' AND v.date >= $1 AND v.date <= $2`)
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return r.scanAccountTotals(rows)
}

func (r *repository) OpeningTotals(ctx context.Context, accountID int64, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(je.debit),0), COALESCE(SUM(je.credit),0)
FROM journal_entries je
JOIN vouchers v ON v.id = je.voucher_id
WHERE je.account_id=$1 AND v.status='POSTED' AND v.date < $2`, accountID, before).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}

func (r *repository) ListEntriesBetween(ctx context.Context, accountID int64, from, to time.Time) ([]GeneralLedgerLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT v.id, v.number, v.type, v.date, je.narration, je.debit, je.credit
FROM journal_entries je
JOIN vouchers v ON v.id = je.voucher_id
WHERE je.account_id=$1 AND v.status='POSTED' AND v.date >= $2 AND v.date <= $3
ORDER BY v.date ASC, v.id ASC, je.id ASC`, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []GeneralLedgerLine
	for rows.Next() {
		var line GeneralLedgerLine
		if err := rows.Scan(&line.VoucherID, &line.VoucherNumber, &line.VoucherType, &line.Date, &line.Narration, &line.Debit, &line.Credit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) VoucherTotalsByType(ctx context.Context, from, to time.Time) (map[vouchers.VoucherType]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `SELECT type, COALESCE(SUM(total_amount),0)
FROM vouchers
WHERE status='POSTED' AND date >= $1 AND date <= $2
GROUP BY type`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	totals := make(map[vouchers.VoucherType]decimal.Decimal)
	for rows.Next() {
		var vt vouchers.VoucherType
		var total decimal.Decimal
		if err := rows.Scan(&vt, &total); err != nil {
			return nil, err
		}
		totals[vt] = total
	}
	return totals, rows.Err()
}
