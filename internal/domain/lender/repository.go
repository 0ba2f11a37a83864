package lender

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lender) error
	GetByLenderID(ctx context.Context, lenderID string) (*Lender, error)
	List(ctx context.Context) ([]*Lender, error)
	Save(ctx context.Context, l *Lender) error
	Delete(ctx context.Context, lenderID string) error
}
