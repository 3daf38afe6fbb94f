package vouchers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// CacheBuster invalidates derived report caches after ledger mutations.
type CacheBuster interface {
	Bump(ctx context.Context) error
}

// Service is the voucher posting engine, the only writer of journal data.
type Service struct {
	repo      RepositoryPort
	logger    *slog.Logger
	buster    CacheBuster
	tolerance decimal.Decimal
	now       func() time.Time
}

// NewService constructs the posting engine.
func NewService(repo RepositoryPort, logger *slog.Logger, buster CacheBuster, tolerance decimal.Decimal) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if tolerance.IsZero() {
		tolerance = shared.DefaultBalanceTolerance
	}
	return &Service{repo: repo, logger: logger, buster: buster, tolerance: tolerance, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Post validates and persists a voucher with its entries as one atomic
// unit. A failure while writing any entry rolls the voucher back too.
func (s *Service) Post(ctx context.Context, input PostingInput) (Voucher, error) {
	if err := input.Validate(s.tolerance); err != nil {
		return Voucher{}, err
	}
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		seq, err := tx.NextVoucherSeq(ctx)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("%s-%06d", input.Type.NumberPrefix(), seq)
		inserted, err := tx.InsertVoucher(ctx, input, number)
		if err != nil {
			return err
		}
		entries, err := tx.InsertEntries(ctx, inserted.ID, input.Lines)
		if err != nil {
			return err
		}
		if input.SourceModule != "" {
			if err := tx.LinkSource(ctx, input.SourceModule, input.SourceID, inserted.ID); err != nil {
				if errors.Is(err, shared.ErrSourceConflict) {
					return shared.ErrSourceAlreadyLinked
				}
				return err
			}
		}
		inserted.Entries = entries
		voucher = inserted
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.bump(ctx)
	s.logger.Info("voucher posted",
		slog.String("number", voucher.Number),
		slog.String("type", string(voucher.Type)),
		slog.String("total", voucher.TotalAmount.StringFixed(2)),
		slog.Int("entries", len(voucher.Entries)),
	)
	return voucher, nil
}

// Cancel flips a posted voucher to Cancelled. Entries are retained so the
// voucher stays visible for audit; it just stops counting in reports.
func (s *Service) Cancel(ctx context.Context, id int64) (Voucher, error) {
	if id == 0 {
		return Voucher{}, fmt.Errorf("%w: voucher id required", shared.ErrValidation)
	}
	var voucher Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucher(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == StatusCancelled {
			return shared.ErrAlreadyCancelled
		}
		if err := tx.UpdateVoucherStatus(ctx, current.ID, StatusCancelled); err != nil {
			return err
		}
		current.Status = StatusCancelled
		voucher = current
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.bump(ctx)
	s.logger.Info("voucher cancelled", slog.String("number", voucher.Number))
	return voucher, nil
}

// Get loads a voucher with its entries.
func (s *Service) Get(ctx context.Context, id int64) (Voucher, error) {
	return s.repo.GetWithEntries(ctx, id)
}

// List returns vouchers matching the filter plus the total match count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Voucher, int, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown voucher type %q", shared.ErrValidation, *filter.Type)
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) bump(ctx context.Context) {
	if s.buster == nil {
		return
	}
	if err := s.buster.Bump(ctx); err != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}
