package uow

import (
	"context"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
)

type Repos struct {
	Lenders   lender.Repository
	Borrowers borrower.Repository
}

// UnitOfWork applies a multi-entity mutation (one borrower write plus N
// lender writes) as a single transaction: either every save lands or none
// does.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
