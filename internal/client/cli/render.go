package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/catalog"
	"github.com/dmitrijs2005/fintrack/internal/client/listing"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/client/notify"
)

// StatusText is the badge text of a card on the given day.
func StatusText(c models.Card, today time.Time) string {
	if c.IsPaid {
		return "Pagado"
	}
	days := models.DaysRemaining(c, today)
	switch {
	case days < 0:
		return "Pago vencido"
	case days == 0:
		return "Vence hoy"
	default:
		return fmt.Sprintf("Faltan %d días", days)
	}
}

func renderCard(pos int, c models.Card, today time.Time) string {
	badge := StyleForStatus(models.StatusOf(c, today)).Render(StatusText(c, today))
	return fmt.Sprintf("%2d. %s %s  %s\n    %s  %s  %s",
		pos,
		c.BankName, c.CardType,
		badge,
		LabelStyle.Render("Terminación • "+c.LastDigits),
		LabelStyle.Render("Corte: "+c.CutDate.Format(DateLayout)),
		LabelStyle.Render("Límite: "+c.DueDate.Format(DateLayout)),
	)
}

func renderList(cards []models.Card, today time.Time) string {
	if len(cards) == 0 {
		return "No hay tarjetas en este filtro\nCambia el filtro o agrega una tarjeta nueva."
	}
	lines := make([]string, 0, len(cards))
	for i, c := range cards {
		lines = append(lines, renderCard(i+1, c, today))
	}
	return strings.Join(lines, "\n")
}

func renderDetails(c models.Card) string {
	key := models.AssetKeyOf(c)
	return fmt.Sprintf("%s %s • %s (bank %s, image %s)", c.BankName, c.CardType, c.LastDigits, c.BankCode, strings.Join(key.Candidates(), " | "))
}

func renderSummary(s listing.Summary) string {
	return fmt.Sprintf("%s %d   %s %d   %s %d",
		DueSoonStyle.Render("Por vencer"), s.DueSoon,
		OverdueStyle.Render("Vencidas"), s.Overdue,
		CurrentStyle.Render("Activas"), s.Active,
	)
}

// renderPlan is the banner above the list: unlimited when entitled, the
// remaining slots otherwise.
func renderPlan(entitled bool, remaining int) string {
	switch {
	case entitled:
		return BannerStyle.Render("Fintrack Pro: tarjetas ilimitadas")
	case remaining <= 0:
		return BannerStyle.Render("Límite Free alcanzado. Desbloquea tarjetas ilimitadas con 'pro on'.")
	default:
		return BannerStyle.Render(fmt.Sprintf("Plan Free: te quedan %d espacio(s) para tarjetas.", remaining))
	}
}

func renderBanks(banks []catalog.Bank) string {
	lines := make([]string, 0, len(banks)+1)
	for _, b := range banks {
		lines = append(lines, fmt.Sprintf("%-14s %-14s %s", b.Code, b.Name, strings.Join(b.CardTypes, ", ")))
	}
	lines = append(lines, fmt.Sprintf("%-14s %s", models.GenericBankCode, "Otro (manual)"))
	return strings.Join(lines, "\n")
}

func renderAlert(n notify.Notification) string {
	return AlertStyle.Render(TitleStyle.Render(n.Title) + "\n" + n.Body)
}

func renderNotification(n notify.Notification) string {
	return fmt.Sprintf("%s  %s  %s", n.FireAt.Format("2006-01-02 15:04"), n.ID, n.Body)
}
