package finmath

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidTenure    = errors.New("tenure must be at least one month")
	ErrInvalidRate      = errors.New("monthly rate must be greater than -100%")
)

// SimpleInterest returns plain monthly interest: principal * rate% * months.
// Rates are percentages per elapsed calendar month, not annualized.
func SimpleInterest(principal, monthlyRatePct, months float64) float64 {
	return principal * monthlyRatePct * months / 100
}

// CompoundInterestMonthly returns interest compounded once per month.
func CompoundInterestMonthly(principal, monthlyRatePct, months float64) float64 {
	return principal*math.Pow(1+monthlyRatePct/100, months) - principal
}

// TotalRepayment is the contractually expected repayment after the given
// number of months under simple monthly interest.
func TotalRepayment(principal, monthlyRatePct, months float64) float64 {
	return principal + SimpleInterest(principal, monthlyRatePct, months)
}

// EMI computes the equal monthly installment P*r*(1+r)^n / ((1+r)^n - 1),
// rounded to 2 decimals. The formula is undefined for a non-positive tenure
// or a rate at or below -100% (zero or negative base).
func EMI(principal, monthlyRatePct float64, tenureMonths int) (float64, error) {
	if principal <= 0 {
		return 0, ErrInvalidPrincipal
	}
	if tenureMonths <= 0 {
		return 0, ErrInvalidTenure
	}
	r := monthlyRatePct / 100
	if r <= -1 {
		return 0, ErrInvalidRate
	}
	if r == 0 {
		return Round2(principal / float64(tenureMonths)), nil
	}
	factor := math.Pow(1+r, float64(tenureMonths))
	return Round2(principal * r * factor / (factor - 1)), nil
}

// Maturity is a simple-interest projection of a loan held to term.
type Maturity struct {
	Principal       float64   `json:"principal"`
	MonthlyRate     float64   `json:"monthly_rate"`
	DurationMonths  int       `json:"duration_months"`
	Interest        float64   `json:"interest"`
	TotalAmount     float64   `json:"total_amount"`
	MonthlyInterest float64   `json:"monthly_interest"`
	StartDate       time.Time `json:"start_date"`
	MaturityDate    time.Time `json:"maturity_date"`
}

// LoanMaturity projects a loan forward durationMonths calendar months from
// startDate under simple monthly interest.
func LoanMaturity(principal, monthlyRatePct float64, startDate time.Time, durationMonths int) (*Maturity, error) {
	if principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if durationMonths <= 0 {
		return nil, ErrInvalidTenure
	}
	interest := SimpleInterest(principal, monthlyRatePct, float64(durationMonths))
	return &Maturity{
		Principal:       principal,
		MonthlyRate:     monthlyRatePct,
		DurationMonths:  durationMonths,
		Interest:        interest,
		TotalAmount:     principal + interest,
		MonthlyInterest: interest / float64(durationMonths),
		StartDate:       startDate,
		MaturityDate:    startDate.AddDate(0, durationMonths, 0),
	}, nil
}

// ROI returns interest earned as a percentage of capital invested, rounded
// to 2 decimals. Zero invested capital yields zero rather than a division
// error.
func ROI(invested, earned float64) float64 {
	if invested == 0 {
		return 0
	}
	return Round2(earned / invested * 100)
}

// AnnualizedROI converts a monthly ROI percentage to a yearly figure.
func AnnualizedROI(monthlyROI float64) float64 {
	return Round2(monthlyROI * 12)
}
