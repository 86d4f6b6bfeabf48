// Package models defines the card entity tracked by the Fintrack client and
// the pure functions that derive its status from a reference date.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/timex"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GenericBankCode is the bank code assigned to banks typed in by the user.
const GenericBankCode = "generic"

// DueSoonDays is the inclusive upper bound of the due-soon window.
const DueSoonDays = 5

// Card is one credit card tracked by the user.
type Card struct {
	// ID is generated once at creation and never changes. It keys
	// persistence and reminder ids.
	ID string `json:"id"`

	BankCode string `json:"bankCode"`
	BankName string `json:"bankName"`
	CardType string `json:"cardType"`

	// LastDigits holds the last four digits of the card number.
	LastDigits string `json:"lastDigits"`

	// CutDate and DueDate are calendar days; the time of day is ignored.
	CutDate time.Time `json:"cutDate"`
	DueDate time.Time `json:"dueDate"`

	// IsPaid marks the current billing cycle as settled.
	IsPaid bool `json:"isPaid"`
}

// NewCard creates an unpaid card with a fresh id.
func NewCard(bankCode, bankName, cardType, lastDigits string, cutDate, dueDate time.Time) Card {
	if strings.TrimSpace(bankCode) == "" {
		bankCode = GenericBankCode
	}
	return Card{
		ID:         uuid.NewString(),
		BankCode:   bankCode,
		BankName:   bankName,
		CardType:   cardType,
		LastDigits: lastDigits,
		CutDate:    cutDate,
		DueDate:    dueDate,
	}
}

// Validate checks the rules the add and edit flows enforce before a card
// reaches the rest of the client.
func (c Card) Validate() error {
	if strings.TrimSpace(c.BankName) == "" {
		return fmt.Errorf("%w: bank name is required", common.ErrInvalidCard)
	}
	if strings.TrimSpace(c.CardType) == "" {
		return fmt.Errorf("%w: card type is required", common.ErrInvalidCard)
	}
	if !IsLastDigits(c.LastDigits) {
		return fmt.Errorf("%w: last digits must be exactly 4 digits", common.ErrInvalidCard)
	}
	if timex.DaysBetween(c.CutDate, c.DueDate) < 0 {
		return fmt.Errorf("%w: due date is before cut date", common.ErrInvalidCard)
	}
	return nil
}

// IsLastDigits reports whether s is exactly four ASCII digits.
func IsLastDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Status is the derived state of a card for a given day.
type Status int

const (
	StatusCurrent Status = iota
	StatusDueSoon
	StatusOverdue
	StatusPaid
)

func (s Status) String() string {
	switch s {
	case StatusPaid:
		return "paid"
	case StatusOverdue:
		return "overdue"
	case StatusDueSoon:
		return "due_soon"
	default:
		return "current"
	}
}

// DaysRemaining returns the number of calendar days from today to the due
// date. Negative values mean the due date has passed.
func DaysRemaining(c Card, today time.Time) int {
	return timex.DaysBetween(today, c.DueDate)
}

// StatusOf derives the card status. The paid flag wins over any date.
func StatusOf(c Card, today time.Time) Status {
	if c.IsPaid {
		return StatusPaid
	}
	days := DaysRemaining(c, today)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= DueSoonDays:
		return StatusDueSoon
	default:
		return StatusCurrent
	}
}

// AssetKey holds the two image lookup candidates for a card.
type AssetKey struct {
	Preferred string
	Fallback  string
}

// Candidates returns the keys in lookup order.
func (k AssetKey) Candidates() []string {
	return []string{k.Preferred, k.Fallback}
}

// AssetKeyOf builds "{bankCode}_{cardType}" and "{bankCode}" with the card
// type lowercased, stripped of spaces and of diacritics.
func AssetKeyOf(c Card) AssetKey {
	code := c.BankCode
	if code == "" {
		code = GenericBankCode
	}
	return AssetKey{
		Preferred: code + "_" + NormalizeCardType(c.CardType),
		Fallback:  code,
	}
}

// NormalizeCardType folds a card type into an asset-name fragment,
// e.g. "Aeroméxico Platino" becomes "aeromexicoplatino".
func NormalizeCardType(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
