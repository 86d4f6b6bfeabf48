// Package services contains application services for the Fintrack client.
// This file defines the card service: it owns the card collection, persists
// it on every mutation and keeps reminders in step with it.
package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/fintrack/internal/client/listing"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// CardService defines the card operations used by the CLI.
//
// Contract:
//   - Load: read the stored collection and resync every reminder.
//   - List: cards matching a filter in display order.
//   - Add / Update / SetPaid / Delete: mutate one card, save the whole
//     collection, then resync that card's reminders.
//
// Cards are addressed by id; list positions are a presentation concern.
type CardService interface {
	Load(ctx context.Context)
	List(ctx context.Context, mode listing.FilterMode) []models.Card
	Get(ctx context.Context, id string) (models.Card, error)
	Add(ctx context.Context, card models.Card) (models.Card, error)
	Update(ctx context.Context, card models.Card) error
	SetPaid(ctx context.Context, id string, paid bool) (models.Card, error)
	TogglePaid(ctx context.Context, id string) (models.Card, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) listing.Summary
	CanAdd(ctx context.Context) bool
	RemainingSlots(ctx context.Context) int
	ResyncAll(ctx context.Context)
}

type CardStore interface {
	Load(ctx context.Context) []models.Card
	Save(ctx context.Context, cards []models.Card) error
}

type Entitlements interface {
	CanAddCard(ctx context.Context, currentCount int) bool
	RemainingSlots(ctx context.Context, currentCount int) int
}

type ReminderScheduler interface {
	Resync(ctx context.Context, c models.Card)
	ResyncAll(ctx context.Context, cards []models.Card)
	CancelAll(ctx context.Context, c models.Card)
}

type cardService struct {
	// mu guards cards together with the save and resync that follow a
	// mutation.
	mu    sync.Mutex
	cards []models.Card

	store     CardStore
	gate      Entitlements
	reminders ReminderScheduler
	clock     timex.Clock
	log       logging.Logger
}

func NewCardService(store CardStore, gate Entitlements, reminders ReminderScheduler, clock timex.Clock, log logging.Logger) CardService {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &cardService{store: store, gate: gate, reminders: reminders, clock: clock, log: log}
}

func (s *cardService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = s.store.Load(ctx)
	s.reminders.ResyncAll(ctx, s.cards)
	s.log.Info(ctx, "cards loaded", "count", len(s.cards))
}

func (s *cardService) ResyncAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders.ResyncAll(ctx, s.cards)
}

func (s *cardService) List(ctx context.Context, mode listing.FilterMode) []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := listing.Arrange(s.cards, s.clock.Now(), mode)
	out := make([]models.Card, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.cards[i])
	}
	return out
}

func (s *cardService) Get(ctx context.Context, id string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Card{}, fmt.Errorf("card %s: %w", id, common.ErrorNotFound)
	}
	return s.cards[i], nil
}

func (s *cardService) Add(ctx context.Context, card models.Card) (models.Card, error) {
	if err := card.Validate(); err != nil {
		return models.Card{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.CanAddCard(ctx, len(s.cards)) {
		return models.Card{}, common.ErrLimitReached
	}

	card = models.NewCard(card.BankCode, card.BankName, card.CardType, card.LastDigits, card.CutDate, card.DueDate)

	next := append(slices.Clone(s.cards), card)
	if err := s.commit(ctx, next); err != nil {
		return models.Card{}, err
	}

	s.reminders.Resync(ctx, card)
	s.log.Info(ctx, "card added", "card_id", card.ID)
	return card, nil
}

// Update replaces every field of the card with the same id except the id.
func (s *cardService) Update(ctx context.Context, card models.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(card.ID)
	if i < 0 {
		return fmt.Errorf("card %s: %w", card.ID, common.ErrorNotFound)
	}

	next := slices.Clone(s.cards)
	next[i] = card
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.reminders.Resync(ctx, card)
	s.log.Info(ctx, "card updated", "card_id", card.ID)
	return nil
}

// SetPaid marks the current cycle as paid or unpaid. Paying cancels every
// reminder of the card; unpaying schedules them again.
func (s *cardService) SetPaid(ctx context.Context, id string, paid bool) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setPaid(ctx, id, func(bool) bool { return paid })
}

func (s *cardService) TogglePaid(ctx context.Context, id string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setPaid(ctx, id, func(cur bool) bool { return !cur })
}

func (s *cardService) setPaid(ctx context.Context, id string, next func(bool) bool) (models.Card, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Card{}, fmt.Errorf("card %s: %w", id, common.ErrorNotFound)
	}

	cards := slices.Clone(s.cards)
	cards[i].IsPaid = next(cards[i].IsPaid)
	if err := s.commit(ctx, cards); err != nil {
		return models.Card{}, err
	}

	card := cards[i]
	if card.IsPaid {
		s.reminders.CancelAll(ctx, card)
	} else {
		s.reminders.Resync(ctx, card)
	}
	s.log.Info(ctx, "card payment updated", "card_id", id, "paid", card.IsPaid)
	return card, nil
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("card %s: %w", id, common.ErrorNotFound)
	}

	removed := s.cards[i]
	next := slices.Delete(slices.Clone(s.cards), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.reminders.CancelAll(ctx, removed)
	s.log.Info(ctx, "card deleted", "card_id", id)
	return nil
}

func (s *cardService) Summary(ctx context.Context) listing.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return listing.Summarize(s.cards, s.clock.Now())
}

func (s *cardService) CanAdd(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gate.CanAddCard(ctx, len(s.cards))
}

func (s *cardService) RemainingSlots(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gate.RemainingSlots(ctx, len(s.cards))
}

// commit saves next and only then makes it the current collection, so a
// failed save leaves both memory and storage untouched.
func (s *cardService) commit(ctx context.Context, next []models.Card) error {
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error(ctx, "failed to save cards", "error", err)
		return err
	}
	s.cards = next
	return nil
}

func (s *cardService) indexOf(id string) int {
	return slices.IndexFunc(s.cards, func(c models.Card) bool { return c.ID == id })
}
