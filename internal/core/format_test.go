package core

import (
	"strings"
	"testing"
	"time"
)

func TestNewFormatterRejectsUnknownOptions(t *testing.T) {
	if _, err := NewFormatter("not-a-locale!", "BRL"); err == nil {
		t.Error("expected error for invalid locale")
	}
	if _, err := NewFormatter("pt-BR", "XYZ"); err == nil {
		t.Error("expected error for unknown currency code")
	}
}

func TestFormatterCurrency(t *testing.T) {
	f := NewDefaultFormatter()
	got := f.Currency(Money{Cents: 123456})
	if !strings.Contains(got, "R$") {
		t.Errorf("expected BRL symbol in %q", got)
	}
	if !strings.Contains(got, "1") || !strings.Contains(got, "34") {
		t.Errorf("expected amount digits in %q", got)
	}
}

func TestFormatterDateTime(t *testing.T) {
	f := NewDefaultFormatter()
	d := time.Date(2024, 5, 1, 9, 5, 0, 0, time.Local)
	if got := f.Date(d); got != "01/05/2024" {
		t.Errorf("expected 01/05/2024, got %q", got)
	}
	if got := f.Time(d); got != "09:05" {
		t.Errorf("expected 09:05, got %q", got)
	}
}
