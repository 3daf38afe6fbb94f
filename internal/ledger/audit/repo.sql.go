package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed audit repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListPostedVoucherTotals(ctx context.Context) ([]VoucherTotals, error) {
	rows, err := r.pool.Query(ctx, `SELECT v.id, v.number, COALESCE(SUM(je.debit),0), COALESCE(SUM(je.credit),0)
FROM vouchers v
LEFT JOIN journal_entries je ON je.voucher_id = v.id
WHERE v.status='POSTED'
GROUP BY v.id, v.number
ORDER BY v.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var totals []VoucherTotals
	for rows.Next() {
		var t VoucherTotals
		if err := rows.Scan(&t.ID, &t.Number, &t.Debit, &t.Credit); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
