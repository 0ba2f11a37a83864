package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"p2p-lending-ledger/internal/domain/borrower"
)

func seedBorrower() *borrower.Borrower {
	return &borrower.Borrower{
		BorrowerID: strings.Repeat("9", 32),
		FullName:   "Budi",
		Loans: []borrower.Loan{{
			LoanID:      strings.Repeat("c", 32),
			Amount:      100000,
			MonthlyRate: 2,
			LoanDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Status:      borrower.StatusPending,
			Contributions: []borrower.LenderContribution{
				{LenderID: strings.Repeat("a", 32), LenderName: "Alice", AmountGiven: 70000, Percentage: 70},
				{LenderID: strings.Repeat("b", 32), LenderName: "Bob", AmountGiven: 30000, Percentage: 30},
			},
		}},
	}
}

func TestBorrowerRepository_RoundTrip(t *testing.T) {
	repo := NewBorrowerRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBorrower()
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByBorrowerID(ctx, b.BorrowerID)
	if err != nil {
		t.Fatalf("GetByBorrowerID: %v", err)
	}
	if got.FullName != "Budi" || len(got.Loans) != 1 {
		t.Fatalf("loaded = %+v", got)
	}
	loan := got.Loans[0]
	if loan.Status != borrower.StatusPending || loan.TotalLentAmount() != 100000 {
		t.Fatalf("loan = %+v", loan)
	}
	if len(loan.Contributions) != 2 || loan.Contributions[0].LenderName != "Alice" {
		t.Fatalf("contributions = %+v", loan.Contributions)
	}
}

func TestBorrowerRepository_RepaymentPersists(t *testing.T) {
	repo := NewBorrowerRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBorrower()
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByBorrowerID(ctx, b.BorrowerID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	l := &got.Loans[0]
	if err := l.RecordRepayment(borrower.Repayment{
		Amount:             110000,
		RepaymentDate:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		MonthsDuration:     5,
		CalculatedInterest: 10000,
		ExpectedTotal:      110000,
	}); err != nil {
		t.Fatalf("RecordRepayment: %v", err)
	}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetByBorrowerID(ctx, b.BorrowerID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	l = &again.Loans[0]
	if l.Status != borrower.StatusCompleted {
		t.Fatalf("status = %q, want completed", l.Status)
	}
	if len(l.Repayments) != 1 || l.Repayments[0].Amount != 110000 {
		t.Fatalf("repayments = %+v", l.Repayments)
	}
	if l.ActualRepaymentDate == nil || l.ActualMonthsDuration != 5 {
		t.Fatalf("actual date/duration = %v / %.2f", l.ActualRepaymentDate, l.ActualMonthsDuration)
	}
}

func TestBorrowerRepository_GetByLoanID(t *testing.T) {
	repo := NewBorrowerRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBorrower()
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, b.Loans[0].LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BorrowerID != b.BorrowerID {
		t.Fatalf("resolved borrower %q, want %q", got.BorrowerID, b.BorrowerID)
	}
	// The full aggregate is loaded, not just the matching loan row.
	if len(got.Loans) != 1 || len(got.Loans[0].Contributions) != 2 {
		t.Fatalf("aggregate = %+v", got)
	}

	if _, err := repo.GetByLoanID(ctx, strings.Repeat("f", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing loan: want ErrRecordNotFound, got %v", err)
	}
}

func TestBorrowerRepository_Delete(t *testing.T) {
	repo := NewBorrowerRepository(newTestDB(t))
	ctx := context.Background()

	b := seedBorrower()
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, b.BorrowerID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByBorrowerID(ctx, b.BorrowerID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, b.BorrowerID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: want ErrRecordNotFound, got %v", err)
	}
}
