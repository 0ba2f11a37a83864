package lender

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TransactionType string

const (
	TypeInvest            TransactionType = "invest"
	TypeInterest          TransactionType = "interest"
	TypeLend              TransactionType = "lend"
	TypeRepaymentReceived TransactionType = "repayment_received"
)

// Transaction is an append-only ledger entry on a lender. System-generated
// entries (lend allocations, interest credits, principal returns) carry the
// loan they came from and the AutoGenerated flag; those two fields are only
// ever set together, by the Apply helpers below.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	LenderRef     uint64          `gorm:"column:lender_ref;index:idx_transactions_lender" json:"-"`
	Type          TransactionType `gorm:"size:20;not null" json:"type"`
	Amount        float64         `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Note          string          `gorm:"type:text" json:"note"`
	LoanID        string          `gorm:"size:32;index" json:"loan_id,omitempty"`
	AutoGenerated bool            `json:"auto_generated,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"-"`
}

func (Transaction) TableName() string { return "lender_transactions" }

// Lender is a capital provider. The running totals are each advanced by
// exactly one transaction type; derived quantities (available funds,
// portfolio value) are always recomputed, never stored.
type Lender struct {
	ID                  uint64         `gorm:"primaryKey;column:id" json:"-"`
	LenderID            string         `gorm:"size:32;uniqueIndex:ux_lenders_lender_id_active" json:"lender_id"`
	FullName            string         `gorm:"size:120;not null" json:"full_name"`
	TotalInvested       float64        `gorm:"type:decimal(18,2);not null;default:0" json:"total_invested"`
	TotalInterestEarned float64        `gorm:"type:decimal(18,2);not null;default:0" json:"total_interest_earned"`
	TotalLent           float64        `gorm:"type:decimal(18,2);not null;default:0" json:"total_lent"`
	Transactions        []Transaction  `gorm:"foreignKey:LenderRef;references:ID" json:"transactions"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lender) TableName() string { return "lenders" }

// AvailableFunds is capital not currently tied up in active loans:
// invested + interest earned - lent out.
func (l *Lender) AvailableFunds() float64 {
	return l.TotalInvested + l.TotalInterestEarned - l.TotalLent
}

// TotalPortfolioValue is invested capital plus everything earned on it.
func (l *Lender) TotalPortfolioValue() float64 {
	return l.TotalInvested + l.TotalInterestEarned
}

// UtilizationRate is the share of the portfolio currently lent out, as a
// percentage.
func (l *Lender) UtilizationRate() float64 {
	total := l.TotalPortfolioValue()
	if total == 0 {
		return 0
	}
	return l.TotalLent / total * 100
}

// ApplyInvest records a manual capital contribution.
func (l *Lender) ApplyInvest(amount float64, at time.Time, note string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.Transactions = append(l.Transactions, Transaction{
		Type:   TypeInvest,
		Amount: amount,
		Date:   at,
		Note:   note,
	})
	l.TotalInvested += amount
	return nil
}

// ApplyLend records a system-generated allocation of this lender's funds to
// a loan. Lending more than the available funds is a caller bug.
func (l *Lender) ApplyLend(amount float64, loanID, borrowerName string, at time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.Transactions = append(l.Transactions, Transaction{
		Type:          TypeLend,
		Amount:        amount,
		Date:          at,
		Note:          fmt.Sprintf("Lent to %s (Loan: %s)", borrowerName, loanID),
		LoanID:        loanID,
		AutoGenerated: true,
	})
	l.TotalLent += amount
	return nil
}

// ApplyInterest credits a system-generated interest share from a repaid loan.
func (l *Lender) ApplyInterest(amount float64, loanID, borrowerName string, at time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.Transactions = append(l.Transactions, Transaction{
		Type:          TypeInterest,
		Amount:        amount,
		Date:          at,
		Note:          fmt.Sprintf("Auto-generated interest from %s (Loan: %s)", borrowerName, loanID),
		LoanID:        loanID,
		AutoGenerated: true,
	})
	l.TotalInterestEarned += amount
	return nil
}

// ApplyRepaymentReceived records the return of principal from a repaid loan,
// releasing the lent-out capital.
func (l *Lender) ApplyRepaymentReceived(amount float64, loanID, borrowerName string, at time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.Transactions = append(l.Transactions, Transaction{
		Type:          TypeRepaymentReceived,
		Amount:        amount,
		Date:          at,
		Note:          fmt.Sprintf("Principal repayment from %s (Loan: %s)", borrowerName, loanID),
		LoanID:        loanID,
		AutoGenerated: true,
	})
	l.TotalLent -= amount
	return nil
}

// RecomputeTotals derives the three running totals from the transaction
// stream. Used to detect drift between stored aggregates and history.
func (l *Lender) RecomputeTotals() (invested, interestEarned, lent float64) {
	for _, tx := range l.Transactions {
		switch tx.Type {
		case TypeInvest:
			invested += tx.Amount
		case TypeInterest:
			interestEarned += tx.Amount
		case TypeLend:
			lent += tx.Amount
		case TypeRepaymentReceived:
			lent -= tx.Amount
		}
	}
	return invested, interestEarned, lent
}
