package borrower

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/pkg/id"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type RegisterInput struct {
	FullName string
}

type BorrowerDTO struct {
	BorrowerID    string        `json:"borrower_id"`
	FullName      string        `json:"full_name"`
	TotalBorrowed float64       `json:"total_borrowed"`
	TotalRepaid   float64       `json:"total_repaid"`
	Outstanding   float64       `json:"outstanding"`
	ActiveLoans   int           `json:"active_loans"`
	Loans         []domain.Loan `json:"loan_history,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func toDTO(b *domain.Borrower, now time.Time, withLoans bool) *BorrowerDTO {
	dto := &BorrowerDTO{
		BorrowerID:    b.BorrowerID,
		FullName:      b.FullName,
		TotalBorrowed: b.TotalBorrowed(),
		TotalRepaid:   b.TotalRepaid(),
		Outstanding:   b.OutstandingAmount(now),
		ActiveLoans:   b.ActiveLoanCount(),
		CreatedAt:     b.CreatedAt,
	}
	if withLoans {
		dto.Loans = b.Loans
	}
	return dto
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*BorrowerDTO, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, errors.New("full name is required")
	}
	b := &domain.Borrower{
		BorrowerID: id.NewID32(),
		FullName:   name,
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b, time.Now().UTC(), false), nil
}

func (u *Usecase) Get(ctx context.Context, borrowerID string) (*BorrowerDTO, error) {
	b, err := u.repo.GetByBorrowerID(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(b, time.Now().UTC(), true), nil
}

func (u *Usecase) List(ctx context.Context) ([]*BorrowerDTO, error) {
	bs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]*BorrowerDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, toDTO(b, now, false))
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, borrowerID string) error {
	err := u.repo.Delete(ctx, borrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
