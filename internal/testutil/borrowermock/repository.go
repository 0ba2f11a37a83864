package borrowermock

import (
	"context"

	"gorm.io/gorm"

	domain "p2p-lending-ledger/internal/domain/borrower"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, b *domain.Borrower) error
	GetByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Borrower, error)
	GetByLoanIDFn     func(ctx context.Context, loanID string) (*domain.Borrower, error)
	ListFn            func(ctx context.Context) ([]*domain.Borrower, error)
	SaveFn            func(ctx context.Context, b *domain.Borrower) error
	DeleteFn          func(ctx context.Context, borrowerID string) error

	Saved []*domain.Borrower
}

func (m *Repo) Create(ctx context.Context, b *domain.Borrower) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBorrowerID(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	if m.GetByBorrowerIDFn != nil {
		return m.GetByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Borrower, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]*domain.Borrower, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, b *domain.Borrower) error {
	m.Saved = append(m.Saved, b)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, borrowerID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, borrowerID)
	}
	return nil
}
