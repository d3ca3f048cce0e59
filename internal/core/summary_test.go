package core

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	d := time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	txs := []Transaction{
		{ID: "1", Description: "salary", Amount: Money{Cents: 10000}, Type: Income, Date: d},
		{ID: "2", Description: "groceries", Amount: Money{Cents: 4000}, Type: Expense, Date: d},
	}

	s := Summarize(txs)
	if s.TotalIncome.Cents != 10000 {
		t.Errorf("expected income 10000, got %d", s.TotalIncome.Cents)
	}
	if s.TotalExpense.Cents != 4000 {
		t.Errorf("expected expense 4000, got %d", s.TotalExpense.Cents)
	}
	if s.NetBalance.Cents != 6000 {
		t.Errorf("expected net 6000, got %d", s.NetBalance.Cents)
	}
	if !s.HasData {
		t.Error("expected HasData=true")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalExpense.Cents != 0 || s.NetBalance.Cents != 0 {
		t.Fatalf("empty input must yield zero totals, got %+v", s)
	}
	if s.HasData {
		t.Error("empty input must yield HasData=false")
	}
}

func TestSummarizeNegativeBalance(t *testing.T) {
	d := time.Now()
	txs := []Transaction{
		{ID: "1", Description: "coffee", Amount: Money{Cents: 500}, Type: Expense, Date: d},
		{ID: "2", Description: "tip", Amount: Money{Cents: 200}, Type: Income, Date: d},
	}
	s := Summarize(txs)
	if s.NetBalance.Cents != -300 {
		t.Errorf("expected net -300, got %d", s.NetBalance.Cents)
	}
	if !s.HasData {
		t.Error("expected HasData=true")
	}
}

func TestSummarizeCentsAccumulation(t *testing.T) {
	// 0.1 + 0.2 style drift cannot happen with integer cents; many small
	// amounts must sum exactly.
	d := time.Now()
	var txs []Transaction
	for i := 0; i < 1000; i++ {
		txs = append(txs, Transaction{
			ID: "x", Description: "micro", Amount: Money{Cents: 1}, Type: Income, Date: d,
		})
	}
	if s := Summarize(txs); s.TotalIncome.Cents != 1000 {
		t.Errorf("expected exact 1000 cents, got %d", s.TotalIncome.Cents)
	}
}
