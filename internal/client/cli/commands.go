package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/client/catalog"
	"github.com/dmitrijs2005/fintrack/internal/client/listing"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
)

func (a *App) List(ctx context.Context, args []string) error {
	mode := listing.FilterAll
	if len(args) > 0 {
		m, err := listing.ParseFilterMode(args[0])
		if err != nil {
			a.println("Error:", err.Error())
			return err
		}
		mode = m
	}

	cards := a.cards.List(ctx, mode)
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	a.remember(ids)

	a.println(renderList(cards, a.clock.Now()))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.cards.CanAdd(ctx) {
		a.println(renderPlan(false, 0))
		return common.ErrLimitReached
	}

	card, err := a.readCard(models.Card{})
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	created, err := a.cards.Add(ctx, card)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	a.println("Card added:", renderDetails(created))
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	card, err := a.pick(ctx, args, "Enter position of the card to edit")
	if err != nil {
		return err
	}

	edited, err := a.readCard(card)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	if err := a.cards.Update(ctx, edited); err != nil {
		a.println("Error:", err.Error())
		return err
	}

	a.println("Card updated:", renderDetails(edited))
	return nil
}

// Pay toggles the paid flag of a card.
func (a *App) Pay(ctx context.Context, args []string) error {
	card, err := a.pick(ctx, args, "Enter position of the card to mark as paid")
	if err != nil {
		return err
	}

	card, err = a.cards.TogglePaid(ctx, card.ID)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	a.println(fmt.Sprintf("%s %s • %s: %s", card.BankName, card.CardType, card.LastDigits, StatusText(card, a.clock.Now())))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	card, err := a.pick(ctx, args, "Enter position of the card to delete")
	if err != nil {
		return err
	}

	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete %s %s • %s?", card.BankName, card.CardType, card.LastDigits), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.cards.Delete(ctx, card.ID); err != nil {
		a.println("Error:", err.Error())
		return err
	}
	a.forget(card.ID)

	a.println("Card deleted")
	return nil
}

func (a *App) Summary(ctx context.Context) error {
	a.println(renderSummary(a.cards.Summary(ctx)))
	a.println(renderPlan(a.gate.IsEntitled(ctx), a.cards.RemainingSlots(ctx)))
	return nil
}

func (a *App) Banks(ctx context.Context) error {
	a.println(renderBanks(catalog.Banks()))
	return nil
}

// Alerts delivers whatever is due and then lists scheduled and delivered
// reminders.
func (a *App) Alerts(ctx context.Context) error {
	a.dispatcher.Tick(ctx)

	outbox := a.repos.Notifications
	pending, err := outbox.Pending(ctx)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}
	delivered, err := outbox.Delivered(ctx)
	if err != nil {
		a.println("Error:", err.Error())
		return err
	}

	a.println(TitleStyle.Render("Scheduled") + " (" + strconv.Itoa(len(pending)) + ")")
	for _, n := range pending {
		a.println(renderNotification(n))
	}
	a.println(TitleStyle.Render("Delivered") + " (" + strconv.Itoa(len(delivered)) + ")")
	for _, n := range delivered {
		a.println(renderNotification(n))
	}
	return nil
}

// Pro shows the plan, or turns unlimited cards on or off.
func (a *App) Pro(ctx context.Context, args []string) error {
	if len(args) > 0 {
		var on bool
		switch strings.ToLower(args[0]) {
		case "on":
			on = true
		case "off":
		default:
			a.println("Usage: pro [on|off]")
			return fmt.Errorf("unknown pro argument %q", args[0])
		}
		if err := a.gate.SetEntitled(ctx, on); err != nil {
			a.println("Error:", err.Error())
			return err
		}
	}

	a.println(renderPlan(a.gate.IsEntitled(ctx), a.cards.RemainingSlots(ctx)))
	return nil
}

func (a *App) Resync(ctx context.Context) error {
	a.cards.ResyncAll(ctx)
	a.println("Reminders rescheduled")
	return nil
}

// pick resolves the card at the position given in args, or asks for one.
func (a *App) pick(ctx context.Context, args []string, prompt string) (models.Card, error) {
	var pos string
	if len(args) > 0 {
		pos = args[0]
	} else {
		s, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return models.Card{}, err
		}
		pos = s
	}

	id, err := a.idAt(pos)
	if err != nil {
		if errors.Is(err, errNoSuchPosition) {
			a.println("No card at position", pos, "(run 'list' first)")
		}
		return models.Card{}, err
	}

	card, err := a.cards.Get(ctx, id)
	if err != nil {
		a.println("Error:", err.Error())
		return models.Card{}, err
	}
	return card, nil
}

// readCard runs the add/edit form. Fields of base are offered as defaults,
// so an empty answer keeps them. The result is validated before it is
// returned.
func (a *App) readCard(base models.Card) (models.Card, error) {
	card := base

	bankInput, err := GetTextOr(a.reader, "Bank (name or code, see 'banks')", base.BankName, a.out)
	if err != nil {
		return card, err
	}
	bank, known := catalog.Find(bankInput)
	switch {
	case known:
		card.BankCode, card.BankName = bank.Code, bank.Name
	case bankInput != base.BankName || card.BankCode == "":
		card.BankCode, card.BankName = models.GenericBankCode, bankInput
	}

	typePrompt := "Card type"
	if known {
		typePrompt = fmt.Sprintf("Card type (%s, or number)", numbered(bank.CardTypes))
	}
	typeInput, err := GetTextOr(a.reader, typePrompt, base.CardType, a.out)
	if err != nil {
		return card, err
	}
	card.CardType = typeInput
	if known {
		if n, err := strconv.Atoi(typeInput); err == nil && n >= 1 && n <= len(bank.CardTypes) {
			card.CardType = bank.CardTypes[n-1]
		}
	}

	for {
		digits, err := GetTextOr(a.reader, "Last 4 digits", base.LastDigits, a.out)
		if err != nil {
			return card, err
		}
		if models.IsLastDigits(digits) {
			card.LastDigits = digits
			break
		}
		a.println("Enter exactly 4 digits")
	}

	if card.CutDate, err = GetDate(a.reader, "Cut date", base.CutDate, a.loc, a.out); err != nil {
		return card, err
	}
	if card.DueDate, err = GetDate(a.reader, "Due date", base.DueDate, a.loc, a.out); err != nil {
		return card, err
	}

	return card, card.Validate()
}

func numbered(items []string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = fmt.Sprintf("%d) %s", i+1, s)
	}
	return strings.Join(parts, ", ")
}
