package repayment

import (
	"math"
	"time"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/pkg/finmath"
)

// LenderReturn is one lender's slice of a repayment: the full principal it
// contributed plus its proportional share of whatever interest was actually
// paid.
type LenderReturn struct {
	LenderID             string  `json:"lender_id"`
	LenderName           string  `json:"lender_name"`
	OriginalContribution float64 `json:"original_contribution"`
	PrincipalReturn      float64 `json:"principal_return"`
	InterestEarned       float64 `json:"interest_earned"`
	TotalReturn          float64 `json:"total_return"`
	ExpectedInterest     float64 `json:"expected_interest"`
	InterestDifference   float64 `json:"interest_difference"`
	PercentageShare      float64 `json:"percentage_share"`
}

// Summary describes a repayment against its contractual expectation and how
// it distributes back across the loan's contributing lenders.
type Summary struct {
	LoanID           string         `json:"loan_id"`
	LoanAmount       float64        `json:"loan_amount"`
	MonthlyRate      float64        `json:"monthly_rate"`
	MonthsDuration   float64        `json:"months_duration"`
	ExpectedInterest float64        `json:"expected_interest"`
	ExpectedTotal    float64        `json:"expected_total"`
	ActualRepayment  float64        `json:"actual_repayment"`
	ActualInterest   float64        `json:"actual_interest"`
	Distribution     []LenderReturn `json:"distribution"`
}

// Distribute computes how an incoming repayment splits back across the
// loan's contribution snapshot. Principal is returned in full before any
// surplus counts as interest: a shortfall below the principal yields zero
// interest for everyone and is absorbed silently. Because the contributions
// partition the principal exactly, the principal returns need no rounding
// correction.
func Distribute(l *borrower.Loan, actualAmount float64, repaymentDate time.Time) (*Summary, error) {
	if actualAmount <= 0 {
		return nil, borrower.ErrInvalidAmount
	}

	months, err := finmath.MonthsBetween(l.LoanDate, repaymentDate)
	if err != nil {
		return nil, err
	}

	expectedInterest := finmath.SimpleInterest(l.Amount, l.MonthlyRate, months)
	actualInterest := math.Max(0, actualAmount-l.Amount)
	totalLent := l.TotalLentAmount()

	dist := make([]LenderReturn, 0, len(l.Contributions))
	for _, c := range l.Contributions {
		proportion := c.AmountGiven / totalLent
		interestShare := actualInterest * proportion
		expectedShare := expectedInterest * proportion
		dist = append(dist, LenderReturn{
			LenderID:             c.LenderID,
			LenderName:           c.LenderName,
			OriginalContribution: c.AmountGiven,
			PrincipalReturn:      c.AmountGiven,
			InterestEarned:       interestShare,
			TotalReturn:          c.AmountGiven + interestShare,
			ExpectedInterest:     expectedShare,
			InterestDifference:   interestShare - expectedShare,
			PercentageShare:      proportion * 100,
		})
	}

	return &Summary{
		LoanID:           l.LoanID,
		LoanAmount:       l.Amount,
		MonthlyRate:      l.MonthlyRate,
		MonthsDuration:   months,
		ExpectedInterest: expectedInterest,
		ExpectedTotal:    l.Amount + expectedInterest,
		ActualRepayment:  actualAmount,
		ActualInterest:   actualInterest,
		Distribution:     dist,
	}, nil
}
