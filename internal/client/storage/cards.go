// Package storage persists the whole card collection as one JSON blob in
// the metadata repository.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// CardsKey is the storage key of the collection. The version suffix is the
// only schema version.
const CardsKey = "credit_cards_items_v1"

var errMalformed = errors.New("malformed card collection")

type CardStore struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewCardStore(repo metadata.Repository, log logging.Logger) *CardStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &CardStore{repo: repo, log: log}
}

// Load returns the stored collection. A missing, unreadable or malformed
// blob yields an empty collection; Load never fails.
func (s *CardStore) Load(ctx context.Context) []models.Card {
	data, err := s.repo.Get(ctx, CardsKey)
	if errors.Is(err, common.ErrorNotFound) {
		return []models.Card{}
	}
	if err != nil {
		s.log.Warn(ctx, "failed to read card collection, starting empty", "error", err)
		return []models.Card{}
	}

	cards, err := Decode(data)
	if err != nil {
		s.log.Warn(ctx, "stored card collection is corrupt, starting empty", "error", err)
		return []models.Card{}
	}
	return cards
}

// Save replaces the stored collection in a single write. On error the
// previous blob is left as it was.
func (s *CardStore) Save(ctx context.Context, cards []models.Card) error {
	data, err := Encode(cards)
	if err != nil {
		return fmt.Errorf("failed to encode card collection: %w", err)
	}
	if err := s.repo.Set(ctx, CardsKey, data); err != nil {
		return fmt.Errorf("failed to save card collection: %w", err)
	}
	return nil
}

func Encode(cards []models.Card) ([]byte, error) {
	if cards == nil {
		cards = []models.Card{}
	}
	return json.Marshal(cards)
}

// Decode parses a stored blob. The blob must be a JSON array of cards, each
// with a unique id and both dates set.
func Decode(data []byte) ([]models.Card, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, errMalformed
	}

	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	seen := make(map[string]struct{}, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: card %d has no id", errMalformed, i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", errMalformed, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.CutDate.IsZero() || c.DueDate.IsZero() {
			return nil, fmt.Errorf("%w: card %s has no dates", errMalformed, c.ID)
		}
	}
	return cards, nil
}
