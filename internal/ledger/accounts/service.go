package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
)

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Name     string
	Type     AccountType
	IsSystem bool
}

// Patch carries optional updates for an existing account. Nil fields are
// left untouched. The system flag is immutable and has no patch field.
type Patch struct {
	Name   *string
	Type   *AccountType
	Status *AccountStatus
}

// Protection is the advisory answer to "can this account be deleted?".
type Protection struct {
	AccountID int64  `json:"account_id"`
	Deletable bool   `json:"deletable"`
	Reason    string `json:"reason,omitempty"`
}

// Service implements the account registry.
type Service struct {
	repo Repository
}

// NewService constructs the account registry service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new active account.
func (s *Service) Create(ctx context.Context, input CreateInput) (Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name is required", shared.ErrValidation)
	}
	if !input.Type.Valid() {
		return Account{}, fmt.Errorf("%w: unknown account type %q", shared.ErrValidation, input.Type)
	}
	taken, err := s.repo.ActiveNameTaken(ctx, name, 0)
	if err != nil {
		return Account{}, err
	}
	if taken {
		return Account{}, shared.ErrDuplicateName
	}
	return s.repo.Insert(ctx, Account{
		Name:     name,
		Type:     input.Type,
		Status:   StatusActive,
		IsSystem: input.IsSystem,
	})
}

// List returns accounts matching the filter, ordered by (type, name).
func (s *Service) List(ctx context.Context, filter Filter) ([]Account, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", shared.ErrValidation, *filter.Type)
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown account status %q", shared.ErrValidation, *filter.Status)
	}
	return s.repo.List(ctx, filter)
}

// Get fetches a single account.
func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	return s.repo.Get(ctx, id)
}

// Update applies a patch. For system accounts the name and type are
// silently stripped from the patch so the call still succeeds.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Account, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if current.IsSystem {
		patch.Name = nil
		patch.Type = nil
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return Account{}, fmt.Errorf("%w: account name is required", shared.ErrValidation)
		}
		taken, err := s.repo.ActiveNameTaken(ctx, name, id)
		if err != nil {
			return Account{}, err
		}
		if taken {
			return Account{}, shared.ErrDuplicateName
		}
		current.Name = name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return Account{}, fmt.Errorf("%w: unknown account type %q", shared.ErrValidation, *patch.Type)
		}
		current.Type = *patch.Type
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return Account{}, fmt.Errorf("%w: unknown account status %q", shared.ErrValidation, *patch.Status)
		}
		current.Status = *patch.Status
	}
	return s.repo.Update(ctx, current)
}

// Delete hard-deletes an account without journal entries. System accounts
// and referenced accounts are refused with an actionable error.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if account.IsSystem {
		return 0, shared.ErrProtectedAccount
	}
	entries, err := s.repo.CountEntries(ctx, id)
	if err != nil {
		return 0, err
	}
	if entries > 0 {
		return 0, shared.ErrAccountHasEntries
	}
	return s.repo.Delete(ctx, id)
}

// CheckProtection reports whether the account is deletable, without side
// effects. UIs call this before offering a delete action.
func (s *Service) CheckProtection(ctx context.Context, id int64) (Protection, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Protection{}, err
	}
	if account.IsSystem {
		return Protection{AccountID: id, Deletable: false, Reason: "system account, deactivate instead"}, nil
	}
	entries, err := s.repo.CountEntries(ctx, id)
	if err != nil {
		return Protection{}, err
	}
	if entries > 0 {
		return Protection{
			AccountID: id,
			Deletable: false,
			Reason:    fmt.Sprintf("account has %d journal entries, deactivate instead", entries),
		}, nil
	}
	return Protection{AccountID: id, Deletable: true}, nil
}
