package lendermock

import (
	"context"

	"gorm.io/gorm"

	domain "p2p-lending-ledger/internal/domain/lender"
)

// Repo is a function-backed mock that satisfies domain.Repository. Only the
// hooks a test sets are exercised; the rest fall back to simple defaults.
type Repo struct {
	CreateFn        func(ctx context.Context, l *domain.Lender) error
	GetByLenderIDFn func(ctx context.Context, lenderID string) (*domain.Lender, error)
	ListFn          func(ctx context.Context) ([]*domain.Lender, error)
	SaveFn          func(ctx context.Context, l *domain.Lender) error
	DeleteFn        func(ctx context.Context, lenderID string) error

	Saved []*domain.Lender
}

func (m *Repo) Create(ctx context.Context, l *domain.Lender) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLenderID(ctx context.Context, lenderID string) (*domain.Lender, error) {
	if m.GetByLenderIDFn != nil {
		return m.GetByLenderIDFn(ctx, lenderID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]*domain.Lender, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Lender) error {
	m.Saved = append(m.Saved, l)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, lenderID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, lenderID)
	}
	return nil
}
