package reminders

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
)

// Title is the title of every reminder.
const Title = "Fintrack"

const (
	keyDueToday = "reminder.due.today"
	keyDueIn    = "reminder.due.in"
	keyCutToday = "reminder.cut.today"
	keyCutIn    = "reminder.cut.in"
)

var supported = []language.Tag{language.Spanish, language.English}

var messages = map[language.Tag]map[string]string{
	language.Spanish: {
		keyDueToday: "Hoy vence tu tarjeta %s %s • %s",
		keyDueIn:    "En %d día(s) vence tu tarjeta %s %s • %s",
		keyCutToday: "Hoy es el corte de %s %s • %s",
		keyCutIn:    "En %d día(s) es el corte de %s %s • %s",
	},
	language.English: {
		keyDueToday: "Today your card %s %s • %s is due",
		keyDueIn:    "In %d day(s) your card %s %s • %s is due",
		keyCutToday: "Today is the statement date of %s %s • %s",
		keyCutIn:    "In %d day(s) is the statement date of %s %s • %s",
	},
}

// Texts renders reminder bodies in one language.
type Texts struct {
	printer *message.Printer
}

// NewTexts builds Texts for the closest supported language to lang.
// Spanish is used when lang is empty or unknown.
func NewTexts(lang string) *Texts {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			// SetString only fails for malformed tags; ours are constants.
			_ = b.SetString(tag, key, msg)
		}
	}

	tag := language.Spanish
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			matched, _, _ := language.NewMatcher(supported).Match(parsed)
			base, _ := matched.Base()
			tag = language.Make(base.String())
		}
	}

	return &Texts{printer: message.NewPrinter(tag, message.Catalog(b))}
}

// Body returns the reminder text for a card, an axis and an offset.
func (t *Texts) Body(c models.Card, axis Axis, offset int) string {
	switch {
	case axis == AxisCut && offset == 0:
		return t.printer.Sprintf(keyCutToday, c.BankName, c.CardType, c.LastDigits)
	case axis == AxisCut:
		return t.printer.Sprintf(keyCutIn, offset, c.BankName, c.CardType, c.LastDigits)
	case offset == 0:
		return t.printer.Sprintf(keyDueToday, c.BankName, c.CardType, c.LastDigits)
	default:
		return t.printer.Sprintf(keyDueIn, offset, c.BankName, c.CardType, c.LastDigits)
	}
}
