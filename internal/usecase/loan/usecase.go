package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/pkg/id"
)

type Usecase struct {
	borrowers borrower.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(borrowers borrower.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{borrowers: borrowers, uow: tx}
}

type CreateInput struct {
	BorrowerID  string
	Amount      float64
	MonthlyRate float64
	LoanDate    time.Time
	Note        string
	// Manual, when non-empty, overrides the automatic proportional
	// distribution. It is validated against the same invariants.
	Manual []ManualAllocation
}

type LoanDTO struct {
	LoanID      string                        `json:"loan_id"`
	BorrowerID  string                        `json:"borrower_id"`
	Amount      float64                       `json:"amount"`
	MonthlyRate float64                       `json:"monthly_rate"`
	LoanDate    time.Time                     `json:"loan_date"`
	Note        string                        `json:"note,omitempty"`
	Status      string                        `json:"status"`
	Lenders     []borrower.LenderContribution `json:"lenders"`
	Repayments  []borrower.Repayment          `json:"repayments"`
}

func toDTO(borrowerID string, l *borrower.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:      l.LoanID,
		BorrowerID:  borrowerID,
		Amount:      l.Amount,
		MonthlyRate: l.MonthlyRate,
		LoanDate:    l.LoanDate,
		Note:        l.Note,
		Status:      string(l.Status),
		Lenders:     l.Contributions,
		Repayments:  l.Repayments,
	}
}

// Create funds a new loan. The distribution is computed (or, for manual
// input, validated) against the lender pool loaded inside the transaction,
// then applied as one unit of work: the loan lands on the borrower and every
// contributing lender gets a lend transaction, or nothing is persisted.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LoanDTO, error) {
	if in.Amount <= 0 || in.MonthlyRate <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.LoanDate.IsZero() {
		return nil, errors.New("loan date is required")
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Borrowers.GetByBorrowerID(ctx, in.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return borrower.ErrNotFound
			}
			return err
		}

		pool, err := r.Lenders.List(ctx)
		if err != nil {
			return err
		}

		var contributions []borrower.LenderContribution
		if len(in.Manual) > 0 {
			contributions, err = BuildManual(in.Amount, in.Manual, pool)
		} else {
			contributions, err = Distribute(in.Amount, pool)
		}
		if err != nil {
			return err
		}

		loanID := id.NewID32()
		b.Loans = append(b.Loans, borrower.Loan{
			LoanID:        loanID,
			Amount:        in.Amount,
			MonthlyRate:   in.MonthlyRate,
			LoanDate:      in.LoanDate,
			Note:          in.Note,
			Status:        borrower.StatusPending,
			Contributions: contributions,
		})

		byID := make(map[string]*lender.Lender, len(pool))
		for _, l := range pool {
			byID[l.LenderID] = l
		}
		now := time.Now().UTC()
		for _, c := range contributions {
			l, ok := byID[c.LenderID]
			if !ok {
				return fmt.Errorf("lender %s: %w", c.LenderID, lender.ErrNotFound)
			}
			if err := l.ApplyLend(c.AmountGiven, loanID, b.FullName, now); err != nil {
				return err
			}
			if err := r.Lenders.Save(ctx, l); err != nil {
				return fmt.Errorf("save lender %s: %w", l.LenderID, err)
			}
		}

		if err := r.Borrowers.Save(ctx, b); err != nil {
			return fmt.Errorf("save borrower %s: %w", b.BorrowerID, err)
		}

		dto = toDTO(b.BorrowerID, &b.Loans[len(b.Loans)-1])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns a loan by its public id.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	b, err := u.borrowers.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrower.ErrLoanNotFound
		}
		return nil, err
	}
	l, err := b.FindLoan(loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(b.BorrowerID, l), nil
}
