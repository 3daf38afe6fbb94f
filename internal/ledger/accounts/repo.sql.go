package accounts

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed account repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const accountColumns = `id, name, type, status, is_system, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.Status, &a.IsSystem, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) Insert(ctx context.Context, account Account) (Account, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO accounts (name, type, status, is_system)
VALUES ($1,$2,$3,$4) RETURNING `+accountColumns, account.Name, account.Type, account.Status, account.IsSystem)
	return scanAccount(row)
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND type=$` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status=$` + strconv.Itoa(len(args))
	}
	if filter.IsSystem != nil {
		args = append(args, *filter.IsSystem)
		query += ` AND is_system=$` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY type, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Update(ctx context.Context, account Account) (Account, error) {
	row := r.pool.QueryRow(ctx, `UPDATE accounts SET name=$2, type=$3, status=$4, updated_at=NOW()
WHERE id=$1 RETURNING `+accountColumns, account.ID, account.Name, account.Type, account.Status)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, shared.ErrAccountNotFound
	}
	return cmd.RowsAffected(), nil
}

func (r *repository) CountEntries(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE account_id=$1`, accountID).Scan(&count)
	return count, err
}

func (r *repository) ActiveNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE name=$1 AND status='ACTIVE' AND id<>$2)`, name, excludeID).Scan(&exists)
	return exists, err
}
