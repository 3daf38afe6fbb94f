package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// retainedEarningsEpoch is the start of history for the balance sheet's
// equity line. The full-history profit recomputation is a known
// simplification kept for report-consumer compatibility.
var retainedEarningsEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Service composes the balance computation and reporting engines. Reads
// are pure folds over posted journal entries; nothing here mutates state.
type Service struct {
	repo      Repository
	cache     *Cache
	tolerance decimal.Decimal
	group     singleflight.Group
}

// NewService constructs the reporting service.
func NewService(repo Repository, cache *Cache, tolerance decimal.Decimal) *Service {
	if tolerance.IsZero() {
		tolerance = shared.DefaultBalanceTolerance
	}
	return &Service{repo: repo, cache: cache, tolerance: tolerance}
}

// Cache exposes the report cache so writers can bump its version.
func (s *Service) Cache() *Cache {
	return s.cache
}

func dateToken(t *time.Time) string {
	if t == nil {
		return "all"
	}
	return t.Format("2006-01-02")
}

// fetch runs the loader behind the versioned cache and a singleflight
// group so concurrent identical report builds collapse into one.
func (s *Service) fetch(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, func(ctx context.Context) (any, error) {
		value, err, _ := s.group.Do(key, func() (any, error) {
			return loader(ctx)
		})
		return value, err
	})
}

// AccountBalance computes one account's signed balance as of a date.
func (s *Service) AccountBalance(ctx context.Context, accountID int64, asOf *time.Time) (Balance, error) {
	var balance Balance
	err := s.fetch(ctx, &balance, func(ctx context.Context) (any, error) {
		account, err := s.repo.GetAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		debit, credit, err := s.repo.AccountTotals(ctx, accountID, asOf)
		if err != nil {
			return nil, err
		}
		return ComputeBalance(account, debit, credit, asOf)
	}, "ledger:reports:balance", fmt.Sprintf("%d", accountID), dateToken(asOf))
	return balance, err
}

// TrialBalance sums every active account's balance as of a date.
func (s *Service) TrialBalance(ctx context.Context, asOf *time.Time) (TrialBalance, error) {
	var tb TrialBalance
	err := s.fetch(ctx, &tb, func(ctx context.Context) (any, error) {
		totals, err := s.repo.ListAccountTotals(ctx, asOf)
		if err != nil {
			return nil, err
		}
		return BuildTrialBalance(totals, asOf, s.tolerance)
	}, "ledger:reports:tb", dateToken(asOf))
	return tb, err
}

// ProfitLoss reports income against expenses for a period.
func (s *Service) ProfitLoss(ctx context.Context, from, to time.Time) (ProfitLoss, error) {
	var pl ProfitLoss
	err := s.fetch(ctx, &pl, func(ctx context.Context) (any, error) {
		totals, err := s.repo.ListAccountTotalsBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return BuildProfitLoss(totals, from, to), nil
	}, "ledger:reports:pl", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return pl, err
}

// BalanceSheet reports assets, liabilities, and synthesized equity as of a
// date. The as-of totals and the retained-earnings profit run are fetched
// concurrently.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	var bs BalanceSheet
	err := s.fetch(ctx, &bs, func(ctx context.Context) (any, error) {
		var (
			totals   []AccountTotals
			plTotals []AccountTotals
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			totals, err = s.repo.ListAccountTotals(gctx, &asOf)
			return err
		})
		g.Go(func() error {
			var err error
			plTotals, err = s.repo.ListAccountTotalsBetween(gctx, retainedEarningsEpoch, asOf)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		pl := BuildProfitLoss(plTotals, retainedEarningsEpoch, asOf)
		return BuildBalanceSheet(totals, pl.NetProfit, asOf), nil
	}, "ledger:reports:bs", asOf.Format("2006-01-02"))
	return bs, err
}

// GeneralLedger returns an account's transaction history with running
// balances for a period.
func (s *Service) GeneralLedger(ctx context.Context, accountID int64, from, to time.Time) (GeneralLedger, error) {
	var gl GeneralLedger
	err := s.fetch(ctx, &gl, func(ctx context.Context) (any, error) {
		account, err := s.repo.GetAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		openingDebit, openingCredit, err := s.repo.OpeningTotals(ctx, accountID, from)
		if err != nil {
			return nil, err
		}
		lines, err := s.repo.ListEntriesBetween(ctx, accountID, from, to)
		if err != nil {
			return nil, err
		}
		return BuildGeneralLedger(account, openingDebit, openingCredit, lines, from, to), nil
	}, "ledger:reports:gl", fmt.Sprintf("%d", accountID), from.Format("2006-01-02"), to.Format("2006-01-02"))
	return gl, err
}

// CashFlow sums posted receipts against payments for a period.
func (s *Service) CashFlow(ctx context.Context, from, to time.Time) (CashFlow, error) {
	var cf CashFlow
	err := s.fetch(ctx, &cf, func(ctx context.Context) (any, error) {
		totals, err := s.repo.VoucherTotalsByType(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return BuildCashFlow(totals, from, to), nil
	}, "ledger:reports:cf", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return cf, err
}
