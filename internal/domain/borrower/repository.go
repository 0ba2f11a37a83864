package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByBorrowerID(ctx context.Context, borrowerID string) (*Borrower, error)
	// GetByLoanID resolves the borrower owning the given loan.
	GetByLoanID(ctx context.Context, loanID string) (*Borrower, error)
	List(ctx context.Context) ([]*Borrower, error)
	Save(ctx context.Context, b *Borrower) error
	Delete(ctx context.Context, borrowerID string) error
}
