package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flowcash/internal/core"
	"flowcash/internal/ledger"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "flowcash_test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestSQLiteTransactionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	date := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	tx := core.Transaction{
		ID:          "tx-1",
		Description: "Salário",
		Amount:      core.Money{Cents: 520000},
		Type:        core.Income,
		Date:        date,
	}

	if err := repo.SaveTransaction(ctx, "user-1", tx); err != nil {
		t.Fatalf("SaveTransaction() error = %v", err)
	}

	got, err := repo.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	if got[0].ID != tx.ID || got[0].Description != tx.Description {
		t.Errorf("round trip mismatch: got %+v", got[0])
	}
	if got[0].Amount.Cents != tx.Amount.Cents {
		t.Errorf("amount = %d, want %d", got[0].Amount.Cents, tx.Amount.Cents)
	}
	if got[0].Type != core.Income {
		t.Errorf("type = %q, want %q", got[0].Type, core.Income)
	}
	if !got[0].Date.Equal(date) {
		t.Errorf("date = %v, want %v", got[0].Date, date)
	}
}

func TestSQLiteTransactionsScopedPerUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		ID:          "tx-1",
		Description: "Aluguel",
		Amount:      core.Money{Cents: 180000},
		Type:        core.Expense,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveTransaction(ctx, "user-a", tx); err != nil {
		t.Fatalf("SaveTransaction() error = %v", err)
	}

	got, err := repo.ListTransactions(ctx, "user-b")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list for other user, got %d entries", len(got))
	}
}

func TestSQLiteSaveTransactionUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		ID:          "tx-1",
		Description: "Internet",
		Amount:      core.Money{Cents: 9900},
		Type:        core.Expense,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveTransaction(ctx, "user-1", tx); err != nil {
		t.Fatalf("SaveTransaction() error = %v", err)
	}

	tx.Amount = core.Money{Cents: 10900}
	if err := repo.SaveTransaction(ctx, "user-1", tx); err != nil {
		t.Fatalf("SaveTransaction() upsert error = %v", err)
	}

	got, err := repo.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction after upsert, got %d", len(got))
	}
	if got[0].Amount.Cents != 10900 {
		t.Errorf("amount after upsert = %d, want 10900", got[0].Amount.Cents)
	}
}

func TestSQLiteDeleteTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		ID:          "tx-1",
		Description: "Mercado",
		Amount:      core.Money{Cents: 35000},
		Type:        core.Expense,
		Date:        time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveTransaction(ctx, "user-1", tx); err != nil {
		t.Fatalf("SaveTransaction() error = %v", err)
	}

	if err := repo.DeleteTransaction(ctx, "user-1", "tx-1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	// Deleting again is a no-op, not an error.
	if err := repo.DeleteTransaction(ctx, "user-1", "tx-1"); err != nil {
		t.Fatalf("DeleteTransaction() second call error = %v", err)
	}

	got, err := repo.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list after delete, got %d entries", len(got))
	}
}

func TestSQLiteProfileMerge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile before first save, got %+v", p)
	}

	first := core.Profile{
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		CompanyName: "Silva ME",
	}
	if err := repo.SaveProfile(ctx, "user-1", first); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	// A partial update must not erase fields it leaves empty.
	update := core.Profile{Phone: "+55 11 91234-5678"}
	if err := repo.SaveProfile(ctx, "user-1", update); err != nil {
		t.Fatalf("SaveProfile() update error = %v", err)
	}

	p, err = repo.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if p == nil {
		t.Fatal("expected profile after save")
	}
	if p.Name != "Maria Silva" {
		t.Errorf("name = %q, want %q", p.Name, "Maria Silva")
	}
	if p.Phone != "+55 11 91234-5678" {
		t.Errorf("phone = %q, want %q", p.Phone, "+55 11 91234-5678")
	}
	if p.CompanyName != "Silva ME" {
		t.Errorf("company = %q, want %q", p.CompanyName, "Silva ME")
	}
}

func TestSQLiteUserStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := ledger.Account{
		ID:           "user-1",
		Email:        "maria@example.com",
		Name:         "Maria Silva",
		PasswordHash: "$2a$10$fakehashfortests",
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := repo.CreateUser(ctx, ledger.Account{ID: "user-2", Email: u.Email}); err != ledger.ErrEmailTaken {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}

	byEmail, err := repo.UserByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("UserByEmail() error = %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Errorf("UserByEmail() = %+v, want id %q", byEmail, u.ID)
	}

	byID, err := repo.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID() error = %v", err)
	}
	if byID == nil || byID.Email != u.Email {
		t.Errorf("UserByID() = %+v, want email %q", byID, u.Email)
	}

	missing, err := repo.UserByID(ctx, "nope")
	if err != nil {
		t.Fatalf("UserByID() miss error = %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown user, got %+v", missing)
	}
}
