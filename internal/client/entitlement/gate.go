// Package entitlement answers whether the user may add another card.
//
// The paid flag lives in the metadata repository under ProKey. The gate is
// advisory: callers decide what to do when CanAddCard is false.
package entitlement

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

const (
	ProKey = "fintrack_is_pro_v1"

	// FreeCardsLimit is the number of cards allowed on the free tier.
	FreeCardsLimit = 3
)

type Gate struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewGate(repo metadata.Repository, log logging.Logger) *Gate {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Gate{repo: repo, log: log}
}

// IsEntitled reports whether the paid tier is active. Missing or unreadable
// flags count as the free tier.
func (g *Gate) IsEntitled(ctx context.Context) bool {
	v, err := g.repo.Get(ctx, ProKey)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			g.log.Warn(ctx, "failed to read entitlement flag", "error", err)
		}
		return false
	}
	return len(v) == 1 && v[0] == 1
}

// SetEntitled stores the paid flag.
func (g *Gate) SetEntitled(ctx context.Context, entitled bool) error {
	v := byte(0)
	if entitled {
		v = 1
	}
	return g.repo.Set(ctx, ProKey, []byte{v})
}

func (g *Gate) Limit() int { return FreeCardsLimit }

// CanAddCard reports whether a card may be added to a collection that
// already holds currentCount cards.
func (g *Gate) CanAddCard(ctx context.Context, currentCount int) bool {
	return g.IsEntitled(ctx) || currentCount < g.Limit()
}

// RemainingSlots returns how many more cards the free tier allows, or -1
// when the paid tier is active.
func (g *Gate) RemainingSlots(ctx context.Context, currentCount int) int {
	if g.IsEntitled(ctx) {
		return -1
	}
	return max(0, g.Limit()-currentCount)
}
