// Package listing computes the ordered, filtered view of the card collection
// shown in the main list, together with the header counters.
package listing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// FilterMode selects which cards appear in the list.
type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterPending FilterMode = "pending"
	FilterOverdue FilterMode = "overdue"
	FilterPaid    FilterMode = "paid"
)

// ParseFilterMode maps user input to a FilterMode. Empty input means all.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterOverdue:
		return FilterOverdue, nil
	case FilterPaid:
		return FilterPaid, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Matches reports whether c belongs to the filter on the given day.
func (m FilterMode) Matches(c models.Card, today time.Time) bool {
	switch m {
	case FilterPending:
		return !c.IsPaid && models.DaysRemaining(c, today) >= 0
	case FilterOverdue:
		return !c.IsPaid && models.DaysRemaining(c, today) < 0
	case FilterPaid:
		return c.IsPaid
	default:
		return true
	}
}

// Sort groups, lowest first.
const (
	groupOverdue = iota
	groupDueSoon
	groupUnpaid
	groupPaid
)

func group(c models.Card, today time.Time) int {
	if c.IsPaid {
		return groupPaid
	}
	if timex.StartOfDay(c.DueDate).Before(timex.StartOfDay(today)) {
		return groupOverdue
	}
	if models.DaysRemaining(c, today) <= models.DueSoonDays {
		return groupDueSoon
	}
	return groupUnpaid
}

// Arrange returns indexes into cards for the cards matching mode, ordered by
// group (overdue, due soon, other unpaid, paid), then due date, bank name
// and last digits. Indexes rather than copies are returned so the caller can
// mutate the underlying card.
func Arrange(cards []models.Card, today time.Time, mode FilterMode) []int {
	idx := make([]int, 0, len(cards))
	groups := make(map[int]int, len(cards))
	for i, c := range cards {
		if !mode.Matches(c, today) {
			continue
		}
		idx = append(idx, i)
		groups[i] = group(c, today)
	}

	sort.SliceStable(idx, func(x, y int) bool {
		a, b := cards[idx[x]], cards[idx[y]]
		if ga, gb := groups[idx[x]], groups[idx[y]]; ga != gb {
			return ga < gb
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if a.BankName != b.BankName {
			return a.BankName < b.BankName
		}
		return a.LastDigits < b.LastDigits
	})

	return idx
}

// Summary holds the counters shown above the list.
type Summary struct {
	DueSoon int
	Overdue int
	Active  int
	Total   int
}

// Summarize counts unpaid cards due within the due-soon window, overdue
// unpaid cards and all unpaid cards.
func Summarize(cards []models.Card, today time.Time) Summary {
	s := Summary{Total: len(cards)}
	for _, c := range cards {
		if c.IsPaid {
			continue
		}
		s.Active++
		days := models.DaysRemaining(c, today)
		switch {
		case days < 0:
			s.Overdue++
		case days <= models.DueSoonDays:
			s.DueSoon++
		}
	}
	return s
}
