package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

const (
	RangeToday  TimeRange = "today"
	Range7Days  TimeRange = "7days"
	Range30Days TimeRange = "30days"
	Range1Year  TimeRange = "1year"
)

type (
	// TxType is the closed income/expense tag set. Sign is carried here,
	// never by a negative amount.
	TxType string

	// TimeRange selects a rolling display window anchored to "now".
	TimeRange string

	Money struct {
		Cents int64
	}

	// Transaction is one income or expense ledger entry. Entries are never
	// mutated in place; add and delete replace the collection wholesale.
	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        TxType
		Date        time.Time
	}

	// Profile holds the user-facing account data. The company fields are
	// optional and only filled after business registration.
	Profile struct {
		Name            string
		Email           string
		AvatarURL       string
		CompanyName     string
		CompanyDocument string
		Phone           string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrZeroDate         = errors.New("date cannot be zero")
)

func (t TxType) IsValid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Merge overlays non-empty fields of p onto dst and returns the result.
// Partial updates must never erase fields the caller did not set.
func (p Profile) Merge(dst Profile) Profile {
	if p.Name != "" {
		dst.Name = p.Name
	}
	if p.Email != "" {
		dst.Email = p.Email
	}
	if p.AvatarURL != "" {
		dst.AvatarURL = p.AvatarURL
	}
	if p.CompanyName != "" {
		dst.CompanyName = p.CompanyName
	}
	if p.CompanyDocument != "" {
		dst.CompanyDocument = p.CompanyDocument
	}
	if p.Phone != "" {
		dst.Phone = p.Phone
	}
	return dst
}
