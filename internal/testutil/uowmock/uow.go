package uowmock

import (
	"context"

	"p2p-lending-ledger/internal/domain/uow"
)

// UoW passes the configured repos straight through without any transaction
// semantics. Good enough for usecase tests, which assert on the repos.
type UoW struct {
	Repos uow.Repos
	// Err, when set, is returned without invoking fn.
	Err error
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.Err != nil {
		return u.Err
	}
	return fn(u.Repos)
}
