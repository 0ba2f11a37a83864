package lender

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "p2p-lending-ledger/internal/domain/lender"
	"p2p-lending-ledger/pkg/finmath"
	"p2p-lending-ledger/pkg/id"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type RegisterInput struct {
	FullName string
}

// LenderDTO carries the stored aggregate plus the derived quantities, which
// are always recomputed from the totals rather than persisted.
type LenderDTO struct {
	LenderID            string               `json:"lender_id"`
	FullName            string               `json:"full_name"`
	TotalInvested       float64              `json:"total_invested"`
	TotalInterestEarned float64              `json:"total_interest_earned"`
	TotalLent           float64              `json:"total_lent"`
	AvailableFunds      float64              `json:"available_funds"`
	PortfolioValue      float64              `json:"portfolio_value"`
	UtilizationRate     float64              `json:"utilization_rate"`
	MonthlyROI          float64              `json:"monthly_roi"`
	Transactions        []domain.Transaction `json:"transactions,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

func toDTO(l *domain.Lender, withTransactions bool) *LenderDTO {
	dto := &LenderDTO{
		LenderID:            l.LenderID,
		FullName:            l.FullName,
		TotalInvested:       l.TotalInvested,
		TotalInterestEarned: l.TotalInterestEarned,
		TotalLent:           l.TotalLent,
		AvailableFunds:      l.AvailableFunds(),
		PortfolioValue:      l.TotalPortfolioValue(),
		UtilizationRate:     finmath.Round2(l.UtilizationRate()),
		MonthlyROI:          finmath.ROI(l.TotalInvested, l.TotalInterestEarned),
		CreatedAt:           l.CreatedAt,
	}
	if withTransactions {
		dto.Transactions = l.Transactions
	}
	return dto
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*LenderDTO, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, errors.New("full name is required")
	}
	l := &domain.Lender{
		LenderID: id.NewID32(),
		FullName: name,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l, false), nil
}

func (u *Usecase) Get(ctx context.Context, lenderID string) (*LenderDTO, error) {
	l, err := u.get(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return toDTO(l, true), nil
}

func (u *Usecase) List(ctx context.Context) ([]*LenderDTO, error) {
	ls, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LenderDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, toDTO(l, false))
	}
	return out, nil
}

// Invest appends an invest transaction, growing the lender's contributed
// capital and thereby its available funds.
func (u *Usecase) Invest(ctx context.Context, lenderID string, amount float64, note string) (*LenderDTO, error) {
	l, err := u.get(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	if err := l.ApplyInvest(amount, time.Now().UTC(), note); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l, true), nil
}

// Transactions returns the lender's ledger entries in append order.
func (u *Usecase) Transactions(ctx context.Context, lenderID string) ([]domain.Transaction, error) {
	l, err := u.get(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return l.Transactions, nil
}

func (u *Usecase) Delete(ctx context.Context, lenderID string) error {
	err := u.repo.Delete(ctx, lenderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (u *Usecase) get(ctx context.Context, lenderID string) (*domain.Lender, error) {
	l, err := u.repo.GetByLenderID(ctx, lenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}
