package borrower

import (
	"time"

	"gorm.io/gorm"

	"p2p-lending-ledger/pkg/finmath"
)

type LoanStatus string

const (
	StatusPending   LoanStatus = "pending"
	StatusCompleted LoanStatus = "completed"
)

// LenderContribution is the immutable record of how much one lender put into
// a loan, snapshotted at creation time. LenderID is a back-reference by
// public id; the lender itself is never mutated through the loan.
type LenderContribution struct {
	ID          uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanRef     uint64  `gorm:"column:loan_ref;index:idx_contributions_loan" json:"-"`
	LenderID    string  `gorm:"size:32;not null" json:"lender_id"`
	LenderName  string  `gorm:"size:120;not null" json:"lender_name"`
	AmountGiven float64 `gorm:"type:decimal(18,2);not null" json:"amount_given"`
	Percentage  float64 `gorm:"type:decimal(8,4);not null" json:"percentage"`
}

func (LenderContribution) TableName() string { return "lender_contributions" }

// Repayment is the immutable record of a repayment against a loan, with the
// contractually expected figures for the elapsed duration captured alongside
// the actual amount paid.
type Repayment struct {
	ID                 uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanRef            uint64    `gorm:"column:loan_ref;index:idx_repayments_loan" json:"-"`
	Amount             float64   `gorm:"type:decimal(18,2);not null" json:"amount"`
	RepaymentDate      time.Time `gorm:"not null" json:"repayment_date"`
	MonthsDuration     float64   `gorm:"type:decimal(8,2);not null" json:"months_duration"`
	CalculatedInterest float64   `gorm:"type:decimal(18,2);not null" json:"calculated_interest"`
	ExpectedTotal      float64   `gorm:"type:decimal(18,2);not null" json:"expected_total"`
	ActualVsExpected   float64   `gorm:"type:decimal(18,2);not null" json:"actual_vs_expected"`
	Note               string    `gorm:"type:text" json:"note"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Repayment) TableName() string { return "loan_repayments" }

// Loan is an interest-bearing loan funded by one or more lenders. The
// contribution snapshot partitions the principal exactly; status moves
// pending -> completed once, when the repayment is recorded.
type Loan struct {
	ID                   uint64               `gorm:"primaryKey;column:id" json:"-"`
	BorrowerRef          uint64               `gorm:"column:borrower_ref;index:idx_loans_borrower" json:"-"`
	LoanID               string               `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	Amount               float64              `gorm:"type:decimal(18,2);not null" json:"amount"`
	MonthlyRate          float64              `gorm:"type:decimal(8,4);not null" json:"monthly_rate"`
	LoanDate             time.Time            `gorm:"not null" json:"loan_date"`
	Note                 string               `gorm:"type:text" json:"note"`
	Status               LoanStatus           `gorm:"size:16;not null;default:'pending'" json:"status"`
	Contributions        []LenderContribution `gorm:"foreignKey:LoanRef;references:ID" json:"lenders"`
	Repayments           []Repayment          `gorm:"foreignKey:LoanRef;references:ID" json:"repayments"`
	ActualRepaymentDate  *time.Time           `json:"actual_repayment_date,omitempty"`
	ActualMonthsDuration float64              `gorm:"type:decimal(8,2);not null;default:0" json:"actual_months_duration,omitempty"`
	CreatedAt            time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time            `gorm:"autoUpdateTime" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// TotalLentAmount is the sum of the contribution snapshot. Equal to Amount
// by the allocation invariant.
func (l *Loan) TotalLentAmount() float64 {
	var sum float64
	for _, c := range l.Contributions {
		sum += c.AmountGiven
	}
	return sum
}

// TotalRepaid is the sum of all repayments recorded against this loan.
func (l *Loan) TotalRepaid() float64 {
	var sum float64
	for _, r := range l.Repayments {
		sum += r.Amount
	}
	return sum
}

// ExpectedTotal is principal plus simple interest for the elapsed duration
// up to now. Returns the bare principal if now precedes the loan date.
func (l *Loan) ExpectedTotal(now time.Time) float64 {
	months, err := finmath.MonthsBetween(l.LoanDate, now)
	if err != nil {
		return l.Amount
	}
	return finmath.TotalRepayment(l.Amount, l.MonthlyRate, months)
}

// RecordRepayment appends the repayment and completes the loan. Partial
// repayments are not modeled: the first repayment closes the loan, and a
// completed loan accepts no further ones.
func (l *Loan) RecordRepayment(r Repayment) error {
	if l.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	l.Repayments = append(l.Repayments, r)
	l.Status = StatusCompleted
	at := r.RepaymentDate
	l.ActualRepaymentDate = &at
	l.ActualMonthsDuration = r.MonthsDuration
	return nil
}

// Borrower is a recipient of pooled lender capital. It exclusively owns its
// loans and their repayments.
type Borrower struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID string         `gorm:"size:32;uniqueIndex:ux_borrowers_borrower_id_active" json:"borrower_id"`
	FullName   string         `gorm:"size:120;not null" json:"full_name"`
	Loans      []Loan         `gorm:"foreignKey:BorrowerRef;references:ID" json:"loan_history"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }

// FindLoan returns the loan with the given public id.
func (b *Borrower) FindLoan(loanID string) (*Loan, error) {
	for i := range b.Loans {
		if b.Loans[i].LoanID == loanID {
			return &b.Loans[i], nil
		}
	}
	return nil, ErrLoanNotFound
}

// TotalBorrowed is the sum of all loan principals, regardless of status.
func (b *Borrower) TotalBorrowed() float64 {
	var sum float64
	for i := range b.Loans {
		sum += b.Loans[i].Amount
	}
	return sum
}

// TotalRepaid is the sum of all repayments across all loans.
func (b *Borrower) TotalRepaid() float64 {
	var sum float64
	for i := range b.Loans {
		sum += b.Loans[i].TotalRepaid()
	}
	return sum
}

// OutstandingAmount sums, over pending loans, the currently expected total
// (principal plus interest accrued to now) minus what has been repaid,
// floored at zero per loan.
func (b *Borrower) OutstandingAmount(now time.Time) float64 {
	var sum float64
	for i := range b.Loans {
		l := &b.Loans[i]
		if l.Status != StatusPending {
			continue
		}
		if due := l.ExpectedTotal(now) - l.TotalRepaid(); due > 0 {
			sum += due
		}
	}
	return sum
}

// ActiveLoanCount is the number of loans still pending repayment.
func (b *Borrower) ActiveLoanCount() int {
	var n int
	for i := range b.Loans {
		if b.Loans[i].Status == StatusPending {
			n++
		}
	}
	return n
}
