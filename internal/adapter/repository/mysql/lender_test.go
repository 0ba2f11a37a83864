package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"p2p-lending-ledger/internal/domain/lender"
)

func TestLenderRepository_RoundTrip(t *testing.T) {
	repo := NewLenderRepository(newTestDB(t))
	ctx := context.Background()

	l := &lender.Lender{
		LenderID: strings.Repeat("a", 32),
		FullName: "Alice",
	}
	if err := l.ApplyInvest(100000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "seed"); err != nil {
		t.Fatalf("ApplyInvest: %v", err)
	}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLenderID(ctx, l.LenderID)
	if err != nil {
		t.Fatalf("GetByLenderID: %v", err)
	}
	if got.FullName != "Alice" || got.TotalInvested != 100000 {
		t.Fatalf("loaded = %+v", got)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Type != lender.TypeInvest {
		t.Fatalf("transactions = %+v", got.Transactions)
	}

	// Mutate the aggregate and save; the loaded copy must reflect both the
	// new total and the appended transaction.
	if err := got.ApplyLend(40000, strings.Repeat("c", 32), "Budi", time.Now().UTC()); err != nil {
		t.Fatalf("ApplyLend: %v", err)
	}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetByLenderID(ctx, l.LenderID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.TotalLent != 40000 || again.AvailableFunds() != 60000 {
		t.Fatalf("reloaded totals = %+v", again)
	}
	if len(again.Transactions) != 2 {
		t.Fatalf("transaction count = %d, want 2", len(again.Transactions))
	}

	// Derived totals agree with the transaction stream after the round trip.
	invested, earned, lent := again.RecomputeTotals()
	if invested != again.TotalInvested || earned != again.TotalInterestEarned || lent != again.TotalLent {
		t.Fatalf("totals drifted from transactions: %.2f/%.2f/%.2f", invested, earned, lent)
	}
}

func TestLenderRepository_TransactionsKeepAppendOrder(t *testing.T) {
	repo := NewLenderRepository(newTestDB(t))
	ctx := context.Background()

	l := &lender.Lender{LenderID: strings.Repeat("a", 32), FullName: "Alice"}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, note := range []string{"first", "second", "third"} {
		if err := l.ApplyInvest(float64(1000*(i+1)), at.AddDate(0, 0, i), note); err != nil {
			t.Fatalf("ApplyInvest %d: %v", i, err)
		}
	}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLenderID(ctx, l.LenderID)
	if err != nil {
		t.Fatalf("GetByLenderID: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got.Transactions[i].Note != want {
			t.Fatalf("transaction %d note = %q, want %q", i, got.Transactions[i].Note, want)
		}
	}
}

func TestLenderRepository_List(t *testing.T) {
	repo := NewLenderRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob"} {
		l := &lender.Lender{
			LenderID: strings.Repeat(string(name[0]|0x20), 32),
			FullName: name,
		}
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "Alice" || got[1].FullName != "Bob" {
		t.Fatalf("list = %+v", got)
	}
}

func TestLenderRepository_GetMissing(t *testing.T) {
	repo := NewLenderRepository(newTestDB(t))
	_, err := repo.GetByLenderID(context.Background(), strings.Repeat("f", 32))
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLenderRepository_Delete(t *testing.T) {
	repo := NewLenderRepository(newTestDB(t))
	ctx := context.Background()

	l := &lender.Lender{LenderID: strings.Repeat("a", 32), FullName: "Alice"}
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, l.LenderID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Soft-deleted rows are invisible to lookups.
	if _, err := repo.GetByLenderID(ctx, l.LenderID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, l.LenderID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete: want ErrRecordNotFound, got %v", err)
	}
}
