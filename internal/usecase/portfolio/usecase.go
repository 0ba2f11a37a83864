package portfolio

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
)

const cacheKey = "portfolio:summary"

type LenderTotals struct {
	Count          int     `json:"count"`
	TotalInvested  float64 `json:"total_invested"`
	InterestEarned float64 `json:"interest_earned"`
	ActiveLending  float64 `json:"active_lending"`
	AvailableFunds float64 `json:"available_funds"`
	PortfolioValue float64 `json:"portfolio_value"`
}

type BorrowerTotals struct {
	Count         int     `json:"count"`
	TotalBorrowed float64 `json:"total_borrowed"`
	TotalRepaid   float64 `json:"total_repaid"`
	Outstanding   float64 `json:"outstanding"`
}

type OverallTotals struct {
	TotalTransactions int `json:"total_transactions"`
	ActiveLoans       int `json:"active_loans"`
}

// Summary is a pool-wide snapshot across every lender and borrower.
type Summary struct {
	Lenders   LenderTotals   `json:"lenders"`
	Borrowers BorrowerTotals `json:"borrowers"`
	Overall   OverallTotals  `json:"overall"`
}

type Usecase struct {
	lenders   lender.Repository
	borrowers borrower.Repository
	cache     *redis.Client
	ttl       time.Duration
}

// NewUsecase builds the summary usecase. cache may be nil, in which case
// every call recomputes from a full load.
func NewUsecase(lenders lender.Repository, borrowers borrower.Repository, cache *redis.Client, ttl time.Duration) *Usecase {
	return &Usecase{lenders: lenders, borrowers: borrowers, cache: cache, ttl: ttl}
}

func (u *Usecase) Summary(ctx context.Context) (*Summary, error) {
	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var s Summary
			if json.Unmarshal(raw, &s) == nil {
				return &s, nil
			}
		}
	}

	s, err := u.compute(ctx)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			if err := u.cache.Set(ctx, cacheKey, raw, u.ttl).Err(); err != nil {
				slog.Warn("portfolio summary cache write failed", "error", err)
			}
		}
	}
	return s, nil
}

// Invalidate drops the cached summary. Called after mutations.
func (u *Usecase) Invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Del(ctx, cacheKey).Err(); err != nil {
		slog.Warn("portfolio summary cache invalidation failed", "error", err)
	}
}

func (u *Usecase) compute(ctx context.Context) (*Summary, error) {
	ls, err := u.lenders.List(ctx)
	if err != nil {
		return nil, err
	}
	bs, err := u.borrowers.List(ctx)
	if err != nil {
		return nil, err
	}

	var s Summary
	s.Lenders.Count = len(ls)
	for _, l := range ls {
		s.Lenders.TotalInvested += l.TotalInvested
		s.Lenders.InterestEarned += l.TotalInterestEarned
		s.Lenders.ActiveLending += l.TotalLent
		s.Lenders.AvailableFunds += l.AvailableFunds()
		s.Overall.TotalTransactions += len(l.Transactions)
	}
	s.Lenders.PortfolioValue = s.Lenders.TotalInvested + s.Lenders.InterestEarned

	now := time.Now().UTC()
	s.Borrowers.Count = len(bs)
	for _, b := range bs {
		s.Borrowers.TotalBorrowed += b.TotalBorrowed()
		s.Borrowers.TotalRepaid += b.TotalRepaid()
		s.Borrowers.Outstanding += b.OutstandingAmount(now)
		s.Overall.ActiveLoans += b.ActiveLoanCount()
		s.Overall.TotalTransactions += len(b.Loans)
	}
	return &s, nil
}
