package loan

import (
	"errors"
	"fmt"
	"math"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
)

// Amounts closer than this are treated as equal, tolerating float drift in
// manually entered distributions.
const mismatchTolerance = 0.01

var (
	ErrInvalidAmount      = errors.New("loan amount must be positive")
	ErrNoLendersAvailable = errors.New("no lenders with available funds")
)

// InsufficientFundsError reports both sides of a failed capacity check, as
// callers need to show the shortfall.
type InsufficientFundsError struct {
	Available float64
	Required  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %.2f, required %.2f", e.Available, e.Required)
}

// DistributionMismatchError reports a distribution whose sum differs from
// the loan amount by more than the tolerance.
type DistributionMismatchError struct {
	Sum   float64
	Total float64
}

func (e *DistributionMismatchError) Error() string {
	return fmt.Sprintf("distribution sums to %.2f, loan amount is %.2f", e.Sum, e.Total)
}

// Distribute splits totalAmount across the lenders with available funds,
// proportionally to each lender's availability. Every lender but the last
// gets its rounded proportional share, capped at its available funds and the
// amount still unallocated; the last lender absorbs whatever remains, which
// guarantees the contributions sum to exactly totalAmount despite rounding.
// Lenders whose allocation rounds to zero are omitted.
func Distribute(totalAmount float64, lenders []*lender.Lender) ([]borrower.LenderContribution, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	withFunds := make([]*lender.Lender, 0, len(lenders))
	var totalAvailable float64
	for _, l := range lenders {
		if l.AvailableFunds() > 0 {
			withFunds = append(withFunds, l)
			totalAvailable += l.AvailableFunds()
		}
	}
	if len(withFunds) == 0 {
		return nil, ErrNoLendersAvailable
	}
	if totalAvailable < totalAmount {
		return nil, &InsufficientFundsError{Available: totalAvailable, Required: totalAmount}
	}

	out := make([]borrower.LenderContribution, 0, len(withFunds))
	remaining := totalAmount
	for i, l := range withFunds {
		var allocation float64
		if i == len(withFunds)-1 {
			allocation = remaining
		} else {
			proportion := l.AvailableFunds() / totalAvailable
			allocation = math.Min(
				math.Round(totalAmount*proportion),
				math.Min(l.AvailableFunds(), remaining),
			)
		}
		if allocation <= 0 {
			continue
		}
		out = append(out, borrower.LenderContribution{
			LenderID:    l.LenderID,
			LenderName:  l.FullName,
			AmountGiven: allocation,
			Percentage:  allocation / totalAmount * 100,
		})
		remaining -= allocation
	}

	return out, nil
}

// ManualAllocation is a caller-supplied per-lender amount.
type ManualAllocation struct {
	LenderID string  `json:"lender_id" validate:"required,hex32"`
	Amount   float64 `json:"amount" validate:"required,gt=0,dec2"`
}

// BuildManual validates a manual distribution against the same invariants the
// automatic one guarantees: every amount within the lender's available funds,
// and the sum equal to totalAmount within the tolerance. On success it
// returns the contribution snapshot in the order given.
func BuildManual(totalAmount float64, manual []ManualAllocation, lenders []*lender.Lender) ([]borrower.LenderContribution, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(manual) == 0 {
		return nil, ErrNoLendersAvailable
	}

	byID := make(map[string]*lender.Lender, len(lenders))
	for _, l := range lenders {
		byID[l.LenderID] = l
	}

	out := make([]borrower.LenderContribution, 0, len(manual))
	assigned := make(map[string]float64, len(manual))
	var sum float64
	for _, m := range manual {
		if m.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		l, ok := byID[m.LenderID]
		if !ok {
			return nil, fmt.Errorf("lender %s: %w", m.LenderID, lender.ErrNotFound)
		}
		// Availability is checked against the lender's running total, so a
		// lender listed twice cannot be over-allocated across entries.
		assigned[l.LenderID] += m.Amount
		if assigned[l.LenderID] > l.AvailableFunds()+mismatchTolerance {
			return nil, &InsufficientFundsError{Available: l.AvailableFunds(), Required: assigned[l.LenderID]}
		}
		out = append(out, borrower.LenderContribution{
			LenderID:    l.LenderID,
			LenderName:  l.FullName,
			AmountGiven: m.Amount,
			Percentage:  m.Amount / totalAmount * 100,
		})
		sum += m.Amount
	}

	if math.Abs(sum-totalAmount) >= mismatchTolerance {
		return nil, &DistributionMismatchError{Sum: sum, Total: totalAmount}
	}
	return out, nil
}
