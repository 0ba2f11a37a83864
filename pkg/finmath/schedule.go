package finmath

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// AmortizationSchedule expands the EMI into a per-period breakdown. Payments
// fall due one calendar month apart starting one month after startDate.
// Monetary amounts use decimal arithmetic so the running balance lands on
// exactly zero; the final period absorbs any rounding drift.
func AmortizationSchedule(principal, monthlyRatePct float64, tenureMonths int, startDate time.Time) ([]ScheduleEntry, error) {
	payment, err := EMI(principal, monthlyRatePct, tenureMonths)
	if err != nil {
		return nil, err
	}

	monthlyPayment := decimal.NewFromFloat(payment)
	rate := decimal.NewFromFloat(monthlyRatePct).Div(decimal.NewFromInt(100))
	remaining := decimal.NewFromFloat(principal)

	schedule := make([]ScheduleEntry, 0, tenureMonths)
	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := monthlyPayment.Sub(interest)
		total := monthlyPayment

		if period == tenureMonths {
			// Close out the balance exactly.
			principalPart = remaining
			total = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            total,
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}
