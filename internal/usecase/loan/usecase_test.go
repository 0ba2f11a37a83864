package loan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"p2p-lending-ledger/internal/domain/borrower"
	"p2p-lending-ledger/internal/domain/lender"
	"p2p-lending-ledger/internal/domain/uow"
	"p2p-lending-ledger/internal/testutil/borrowermock"
	"p2p-lending-ledger/internal/testutil/lendermock"
	"p2p-lending-ledger/internal/testutil/uowmock"
)

func testBorrower() *borrower.Borrower {
	return &borrower.Borrower{
		BorrowerID: strings.Repeat("9", 32),
		FullName:   "Budi",
	}
}

func TestCreate_HappyPath(t *testing.T) {
	pool := []*lender.Lender{
		poolLender('a', "Alice", 60000, 0),
		poolLender('b', "Bob", 40000, 0),
	}
	b := testBorrower()

	lenders := &lendermock.Repo{
		ListFn: func(ctx context.Context) ([]*lender.Lender, error) { return pool, nil },
	}
	borrowers := &borrowermock.Repo{
		GetByBorrowerIDFn: func(ctx context.Context, id string) (*borrower.Borrower, error) {
			if id != b.BorrowerID {
				t.Fatalf("unexpected borrower lookup %q", id)
			}
			return b, nil
		},
	}
	txn := &uowmock.UoW{Repos: uow.Repos{Lenders: lenders, Borrowers: borrowers}}

	uc := NewUsecase(borrowers, txn)
	dto, err := uc.Create(context.Background(), CreateInput{
		BorrowerID:  b.BorrowerID,
		Amount:      100000,
		MonthlyRate: 1.5,
		LoanDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if dto.Status != string(borrower.StatusPending) {
		t.Fatalf("status = %q, want pending", dto.Status)
	}
	if len(dto.LoanID) != 32 {
		t.Fatalf("loan id %q is not 32 chars", dto.LoanID)
	}
	if len(dto.Lenders) != 2 || dto.Lenders[0].AmountGiven != 60000 || dto.Lenders[1].AmountGiven != 40000 {
		t.Fatalf("contributions = %+v", dto.Lenders)
	}

	// Both lenders and the borrower were saved inside the transaction.
	if len(lenders.Saved) != 2 {
		t.Fatalf("saved %d lenders, want 2", len(lenders.Saved))
	}
	if len(borrowers.Saved) != 1 {
		t.Fatalf("saved %d borrowers, want 1", len(borrowers.Saved))
	}

	// Each contributing lender got a lend transaction for its share.
	if pool[0].TotalLent != 60000 || pool[1].TotalLent != 40000 {
		t.Fatalf("lent totals = %.2f / %.2f", pool[0].TotalLent, pool[1].TotalLent)
	}
	tx := pool[0].Transactions[len(pool[0].Transactions)-1]
	if tx.Type != lender.TypeLend || tx.LoanID != dto.LoanID || !tx.AutoGenerated {
		t.Fatalf("lend transaction = %+v", tx)
	}
	if !strings.Contains(tx.Note, "Budi") {
		t.Fatalf("note %q does not mention the borrower", tx.Note)
	}

	// The loan was appended to the borrower aggregate.
	if len(b.Loans) != 1 || b.Loans[0].LoanID != dto.LoanID {
		t.Fatalf("borrower loans = %+v", b.Loans)
	}
}

func TestCreate_ManualDistribution(t *testing.T) {
	pool := []*lender.Lender{
		poolLender('a', "Alice", 60000, 0),
		poolLender('b', "Bob", 40000, 0),
	}
	b := testBorrower()

	lenders := &lendermock.Repo{
		ListFn: func(ctx context.Context) ([]*lender.Lender, error) { return pool, nil },
	}
	borrowers := &borrowermock.Repo{
		GetByBorrowerIDFn: func(ctx context.Context, id string) (*borrower.Borrower, error) { return b, nil },
	}
	txn := &uowmock.UoW{Repos: uow.Repos{Lenders: lenders, Borrowers: borrowers}}

	uc := NewUsecase(borrowers, txn)
	dto, err := uc.Create(context.Background(), CreateInput{
		BorrowerID:  b.BorrowerID,
		Amount:      50000,
		MonthlyRate: 2,
		LoanDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Manual: []ManualAllocation{
			{LenderID: pool[1].LenderID, Amount: 35000},
			{LenderID: pool[0].LenderID, Amount: 15000},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Manual order is preserved, automatic proportionality is not applied.
	if dto.Lenders[0].LenderName != "Bob" || dto.Lenders[0].AmountGiven != 35000 {
		t.Fatalf("contributions = %+v", dto.Lenders)
	}
	if pool[1].TotalLent != 35000 || pool[0].TotalLent != 15000 {
		t.Fatalf("lent totals = %.2f / %.2f", pool[0].TotalLent, pool[1].TotalLent)
	}
}

func TestCreate_BorrowerNotFound(t *testing.T) {
	txn := &uowmock.UoW{Repos: uow.Repos{
		Lenders:   &lendermock.Repo{},
		Borrowers: &borrowermock.Repo{}, // default Get -> record not found
	}}
	uc := NewUsecase(&borrowermock.Repo{}, txn)

	_, err := uc.Create(context.Background(), CreateInput{
		BorrowerID:  strings.Repeat("9", 32),
		Amount:      1000,
		MonthlyRate: 1,
		LoanDate:    time.Now(),
	})
	if !errors.Is(err, borrower.ErrNotFound) {
		t.Fatalf("want borrower.ErrNotFound, got %v", err)
	}
}

func TestCreate_InsufficientFunds_NothingSaved(t *testing.T) {
	pool := []*lender.Lender{poolLender('a', "Alice", 5000, 0)}
	b := testBorrower()

	lenders := &lendermock.Repo{
		ListFn: func(ctx context.Context) ([]*lender.Lender, error) { return pool, nil },
	}
	borrowers := &borrowermock.Repo{
		GetByBorrowerIDFn: func(ctx context.Context, id string) (*borrower.Borrower, error) { return b, nil },
	}
	txn := &uowmock.UoW{Repos: uow.Repos{Lenders: lenders, Borrowers: borrowers}}

	uc := NewUsecase(borrowers, txn)
	_, err := uc.Create(context.Background(), CreateInput{
		BorrowerID:  b.BorrowerID,
		Amount:      100000,
		MonthlyRate: 1.5,
		LoanDate:    time.Now(),
	})
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientFundsError, got %v", err)
	}
	if len(lenders.Saved) != 0 || len(borrowers.Saved) != 0 {
		t.Fatalf("repos touched on failed distribution: %d lenders, %d borrowers",
			len(lenders.Saved), len(borrowers.Saved))
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	uc := NewUsecase(&borrowermock.Repo{}, &uowmock.UoW{})

	cases := []CreateInput{
		{BorrowerID: "x", Amount: 0, MonthlyRate: 1, LoanDate: time.Now()},
		{BorrowerID: "x", Amount: 1000, MonthlyRate: 0, LoanDate: time.Now()},
	}
	for _, in := range cases {
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("input %+v: want ErrInvalidAmount, got %v", in, err)
		}
	}

	if _, err := uc.Create(context.Background(), CreateInput{
		BorrowerID: "x", Amount: 1000, MonthlyRate: 1,
	}); err == nil {
		t.Fatal("zero loan date accepted")
	}
}

func TestGet(t *testing.T) {
	b := testBorrower()
	loanID := strings.Repeat("c", 32)
	b.Loans = []borrower.Loan{{
		LoanID:      loanID,
		Amount:      100000,
		MonthlyRate: 1.5,
		LoanDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:      borrower.StatusPending,
	}}

	borrowers := &borrowermock.Repo{
		GetByLoanIDFn: func(ctx context.Context, id string) (*borrower.Borrower, error) {
			if id != loanID {
				t.Fatalf("unexpected loan lookup %q", id)
			}
			return b, nil
		},
	}
	uc := NewUsecase(borrowers, &uowmock.UoW{})

	dto, err := uc.Get(context.Background(), loanID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dto.LoanID != loanID || dto.BorrowerID != b.BorrowerID || dto.Amount != 100000 {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewUsecase(&borrowermock.Repo{}, &uowmock.UoW{})
	if _, err := uc.Get(context.Background(), strings.Repeat("c", 32)); !errors.Is(err, borrower.ErrLoanNotFound) {
		t.Fatalf("want ErrLoanNotFound, got %v", err)
	}
}
