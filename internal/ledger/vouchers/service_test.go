package vouchers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	vouchers    map[int64]Voucher
	entries     map[int64][]JournalEntry // voucherID -> entries
	sourceLinks map[string]int64         // module+ref -> voucherID
	seq         int64
	nextID      int64
	nextEntryID int64

	// Error injection
	insertEntriesErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		vouchers:    make(map[int64]Voucher),
		entries:     make(map[int64][]JournalEntry),
		sourceLinks: make(map[string]int64),
		nextID:      1,
		nextEntryID: 1,
	}
}

// WithTx stages writes in a shadow copy and applies them only when fn
// succeeds, mirroring the all-or-nothing contract of the real repository.
func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &mockTxRepo{
		base:        m,
		vouchers:    make(map[int64]Voucher),
		entries:     make(map[int64][]JournalEntry),
		sourceLinks: make(map[string]int64),
		seq:         m.seq,
		nextID:      m.nextID,
		nextEntryID: m.nextEntryID,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, v := range tx.vouchers {
		m.vouchers[id] = v
	}
	for id, e := range tx.entries {
		m.entries[id] = e
	}
	for key, id := range tx.sourceLinks {
		m.sourceLinks[key] = id
	}
	m.seq = tx.seq
	m.nextID = tx.nextID
	m.nextEntryID = tx.nextEntryID
	return nil
}

func (m *mockRepository) GetWithEntries(ctx context.Context, id int64) (Voucher, error) {
	v, ok := m.vouchers[id]
	if !ok {
		return Voucher{}, shared.ErrVoucherNotFound
	}
	v.Entries = m.entries[id]
	return v, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Voucher, int, error) {
	result := []Voucher{}
	for _, v := range m.vouchers {
		if filter.Type != nil && v.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		result = append(result, v)
	}
	return result, len(result), nil
}

// ============================================================================
// MOCK TX REPOSITORY
// ============================================================================

type mockTxRepo struct {
	base        *mockRepository
	vouchers    map[int64]Voucher
	entries     map[int64][]JournalEntry
	sourceLinks map[string]int64
	seq         int64
	nextID      int64
	nextEntryID int64
}

func (tx *mockTxRepo) NextVoucherSeq(ctx context.Context) (int64, error) {
	tx.seq++
	return tx.seq, nil
}

func (tx *mockTxRepo) InsertVoucher(ctx context.Context, in PostingInput, number string) (Voucher, error) {
	id := tx.nextID
	tx.nextID++
	now := time.Now()
	v := Voucher{
		ID:          id,
		Number:      number,
		Type:        in.Type,
		Date:        in.Date,
		Narration:   in.Narration,
		Status:      StatusPosted,
		TotalAmount: in.TotalDebits(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tx.vouchers[id] = v
	return v, nil
}

func (tx *mockTxRepo) InsertEntries(ctx context.Context, voucherID int64, lines []PostingLineInput) ([]JournalEntry, error) {
	if tx.base.insertEntriesErr != nil {
		return nil, tx.base.insertEntriesErr
	}
	entries := make([]JournalEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, JournalEntry{
			ID:        tx.nextEntryID,
			VoucherID: voucherID,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Narration: line.Narration,
		})
		tx.nextEntryID++
	}
	tx.entries[voucherID] = entries
	return entries, nil
}

func (tx *mockTxRepo) LinkSource(ctx context.Context, module string, ref uuid.UUID, voucherID int64) error {
	key := module + ":" + ref.String()
	if _, ok := tx.base.sourceLinks[key]; ok {
		return shared.ErrSourceConflict
	}
	if _, ok := tx.sourceLinks[key]; ok {
		return shared.ErrSourceConflict
	}
	tx.sourceLinks[key] = voucherID
	return nil
}

func (tx *mockTxRepo) GetVoucher(ctx context.Context, id int64) (Voucher, error) {
	if v, ok := tx.vouchers[id]; ok {
		return v, nil
	}
	v, ok := tx.base.vouchers[id]
	if !ok {
		return Voucher{}, shared.ErrVoucherNotFound
	}
	return v, nil
}

func (tx *mockTxRepo) UpdateVoucherStatus(ctx context.Context, id int64, status VoucherStatus) error {
	v, err := tx.GetVoucher(ctx, id)
	if err != nil {
		return err
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	tx.vouchers[id] = v
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

type countingBuster struct {
	bumps int
	err   error
}

func (b *countingBuster) Bump(ctx context.Context) error {
	b.bumps++
	return b.err
}

func newTestService(repo *mockRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, decimal.Zero)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balancedInput() PostingInput {
	return PostingInput{
		Type:      TypePayment,
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Narration: "Fuel purchase from depot",
		Lines: []PostingLineInput{
			{AccountID: 10, Debit: dec("1500.00")},
			{AccountID: 20, Credit: dec("1500.00")},
		},
	}
}

// ============================================================================
// TESTS
// ============================================================================

func TestPostBalancedVoucher(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	voucher, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)

	assert.Equal(t, "PV-000001", voucher.Number)
	assert.Equal(t, StatusPosted, voucher.Status)
	assert.True(t, voucher.TotalAmount.Equal(dec("1500.00")))
	require.Len(t, voucher.Entries, 2)
	assert.Equal(t, int64(10), voucher.Entries[0].AccountID)
	assert.Equal(t, int64(20), voucher.Entries[1].AccountID)
}

func TestPostVoucherNumberSequence(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)
	assert.Equal(t, "PV-000001", first.Number)

	in := balancedInput()
	in.Type = TypeReceipt
	second, err := svc.Post(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "RV-000002", second.Number)

	in.Type = TypeJournal
	third, err := svc.Post(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "JV-000003", third.Number)
}

func TestPostUnbalancedVoucher(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.Lines[1].Credit = dec("1400.00")

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnbalanced))
	assert.Contains(t, err.Error(), "difference")
	assert.Empty(t, repo.vouchers)
}

func TestPostWithinTolerance(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	// A rounding residue strictly below the tolerance still posts.
	in := balancedInput()
	in.Lines[1].Credit = dec("1499.995")

	_, err := svc.Post(ctx, in)
	require.NoError(t, err)
}

func TestPostBothSidesOnOneLine(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.Lines[0].Credit = dec("1500.00")
	in.Lines[1] = PostingLineInput{AccountID: 20}

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPostNegativeAmount(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.Lines[0].Debit = dec("-1500.00")

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPostMissingAccount(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.Lines[0].AccountID = 0

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPostNoLines(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.Lines = nil

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPostRollsBackOnEntryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.insertEntriesErr = errors.New("insert entries: connection reset")
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Post(ctx, balancedInput())
	require.Error(t, err)

	// Neither the voucher header nor any entry may survive the failed tx.
	assert.Empty(t, repo.vouchers)
	assert.Empty(t, repo.entries)

	// The sequence restarts too: the shadow tx never committed.
	repo.insertEntriesErr = nil
	voucher, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)
	assert.Equal(t, "PV-000001", voucher.Number)
}

func TestPostWithSourceLink(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	ref := uuid.New()
	in := balancedInput()
	in.SourceModule = "purchases"
	in.SourceID = ref

	_, err := svc.Post(ctx, in)
	require.NoError(t, err)

	// Replaying the same source document must not produce a second voucher.
	_, err = svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrSourceAlreadyLinked))
	assert.Len(t, repo.vouchers, 1)
}

func TestPostSourceModuleWithoutID(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	in := balancedInput()
	in.SourceModule = "purchases"

	_, err := svc.Post(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestPostBumpsReportCache(t *testing.T) {
	repo := newMockRepository()
	buster := &countingBuster{}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), buster, decimal.Zero)
	ctx := context.Background()

	_, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)
	assert.Equal(t, 1, buster.bumps)
}

func TestPostSucceedsWhenCacheBumpFails(t *testing.T) {
	repo := newMockRepository()
	buster := &countingBuster{err: errors.New("redis: connection refused")}
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), buster, decimal.Zero)
	ctx := context.Background()

	_, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)
}

func TestCancelVoucher(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	posted, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Entries stay attached for audit.
	got, err := svc.Get(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Len(t, got.Entries, 2)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	posted, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, posted.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, posted.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrAlreadyCancelled))
}

func TestCancelUnknownVoucher(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Cancel(ctx, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrVoucherNotFound))
}

func TestListVouchersFiltered(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Post(ctx, balancedInput())
	require.NoError(t, err)
	in := balancedInput()
	in.Type = TypeReceipt
	_, err = svc.Post(ctx, in)
	require.NoError(t, err)

	receipts := TypeReceipt
	vouchers, total, err := svc.List(ctx, ListFilter{Type: &receipts})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, vouchers, 1)
	assert.Equal(t, TypeReceipt, vouchers[0].Type)
}
