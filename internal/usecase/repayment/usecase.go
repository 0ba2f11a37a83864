package repayment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
	"p2p-lending-ledger/internal/domain/uow"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type ProcessInput struct {
	LoanID        string
	Amount        float64
	RepaymentDate time.Time
	Note          string
}

// Process settles a loan: it records the repayment (completing the loan),
// returns each contributing lender's principal, and credits each lender's
// interest share, all in one transaction. A loan already completed is
// rejected; the model supports exactly one repayment per loan.
func (u *Usecase) Process(ctx context.Context, in ProcessInput) (*Summary, error) {
	if in.Amount <= 0 {
		return nil, borrower.ErrInvalidAmount
	}
	if in.RepaymentDate.IsZero() {
		return nil, errors.New("repayment date is required")
	}

	var summary *Summary
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByLoanID(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrLoanNotFound
			}
			return err
		}
		l, err := b.FindLoan(in.LoanID)
		if err != nil {
			return err
		}
		if l.Status == borrower.StatusCompleted {
			return borrower.ErrAlreadyCompleted
		}

		summary, err = Distribute(l, in.Amount, in.RepaymentDate)
		if err != nil {
			return err
		}

		if err := l.RecordRepayment(borrower.Repayment{
			Amount:             in.Amount,
			RepaymentDate:      in.RepaymentDate,
			MonthsDuration:     summary.MonthsDuration,
			CalculatedInterest: summary.ExpectedInterest,
			ExpectedTotal:      summary.ExpectedTotal,
			ActualVsExpected:   in.Amount - summary.ExpectedTotal,
			Note:               in.Note,
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, ret := range summary.Distribution {
			ld, err := r.Lenders.GetByLenderID(ctx, ret.LenderID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("lender %s: %w", ret.LenderID, lender.ErrNotFound)
				}
				return err
			}
			if ret.InterestEarned > 0 {
				if err := ld.ApplyInterest(ret.InterestEarned, l.LoanID, b.FullName, now); err != nil {
					return err
				}
			}
			if err := ld.ApplyRepaymentReceived(ret.PrincipalReturn, l.LoanID, b.FullName, now); err != nil {
				return err
			}
			if err := r.Lenders.Save(ctx, ld); err != nil {
				return fmt.Errorf("save lender %s: %w", ld.LenderID, err)
			}
		}

		if err := r.Borrowers.Save(ctx, b); err != nil {
			return fmt.Errorf("save borrower %s: %w", b.BorrowerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
