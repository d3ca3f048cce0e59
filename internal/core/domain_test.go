package core

import (
	"testing"
	"time"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestTransactionValidate(t *testing.T) {
	d := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	good := Transaction{
		ID:          "abc",
		Description: "ok",
		Amount:      Money{Cents: 100},
		Type:        Income,
		Date:        d,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{ID: "a", Description: "", Amount: Money{Cents: 1}, Type: Income, Date: d},
		{ID: "a", Description: "x", Amount: Money{Cents: 0}, Type: Income, Date: d},
		{ID: "a", Description: "x", Amount: Money{Cents: 1}, Type: TxType("transfer"), Date: d},
		{ID: "a", Description: "x", Amount: Money{Cents: 1}, Type: Expense, Date: time.Time{}},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestProfileMerge(t *testing.T) {
	existing := Profile{
		Name:      "Maria",
		Email:     "maria@example.com",
		AvatarURL: "https://example.com/a.png",
	}
	update := Profile{
		CompanyName:     "Padaria Central",
		CompanyDocument: "12.345.678/0001-00",
		Phone:           "+55 11 99999-0000",
	}

	merged := update.Merge(existing)
	if merged.Name != "Maria" || merged.Email != "maria@example.com" {
		t.Fatalf("partial update must not erase existing fields: %+v", merged)
	}
	if merged.CompanyName != "Padaria Central" || merged.Phone != "+55 11 99999-0000" {
		t.Fatalf("update fields must be applied: %+v", merged)
	}
}
