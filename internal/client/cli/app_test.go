package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fintrack/internal/client/client"
	"github.com/dmitrijs2005/fintrack/internal/client/config"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type testApp struct {
	*App
	out   *bytes.Buffer
	clock *stepClock
}

// feed replaces the pending form input.
func (ta *testApp) feed(lines ...string) {
	ta.App.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

var appNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.DB.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	clock := &stepClock{t: appNow}
	out := &bytes.Buffer{}
	a := newApp(cfg, repos, clock, time.UTC, logging.NewNopLogger(), bufio.NewReader(strings.NewReader("")), out)
	a.cards.Load(ctx)

	return &testApp{App: a, out: out, clock: clock}
}

func (ta *testApp) addCard(t *testing.T, bank, cardType, digits string, cut, due time.Time) models.Card {
	t.Helper()
	c, err := ta.cards.Add(context.Background(), models.Card{
		BankName: bank, CardType: cardType, LastDigits: digits, CutDate: cut, DueDate: due,
	})
	require.NoError(t, err)
	return c
}

func pendingIDs(t *testing.T, ta *testApp) []string {
	t.Helper()
	ns, err := ta.repos.Notifications.Pending(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestApp_AddFromCatalog(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.feed("bbva", "2", "12a4", "1234", "2026-03-01", "2026-03-12")
	require.NoError(t, ta.Add(ctx))
	assert.Contains(t, ta.out.String(), "Enter exactly 4 digits")
	assert.Contains(t, ta.out.String(), "Card added: BBVA Oro • 1234")
	assert.Contains(t, ta.out.String(), "bbva_oro | bbva")

	cards := ta.cards.List(ctx, "")
	require.Len(t, cards, 1)
	c := cards[0]
	assert.Equal(t, "bbva", c.BankCode)
	assert.Equal(t, "Oro", c.CardType)

	// cut reminders are all in the past, due_3 fired yesterday
	assert.ElementsMatch(t, []string{c.ID + "_due_1", c.ID + "_due_0"}, pendingIDs(t, ta))
}

func TestApp_AddManualBank(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.feed("Mi Banco", "Clásica", "0001", "2026-03-20", "2026-04-05")
	require.NoError(t, ta.Add(ctx))

	cards := ta.cards.List(ctx, "")
	require.Len(t, cards, 1)
	assert.Equal(t, models.GenericBankCode, cards[0].BankCode)
	assert.Equal(t, "Mi Banco", cards[0].BankName)
}

func TestApp_AddRejectsInvalidCard(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.feed("Nu", "1", "1234", "2026-03-20", "2026-03-05")
	err := ta.Add(ctx)
	require.ErrorIs(t, err, common.ErrInvalidCard)
	assert.Empty(t, ta.cards.List(ctx, ""))
}

func TestApp_AddBlockedAtLimit(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	for _, d := range []string{"1111", "2222", "3333"} {
		ta.addCard(t, "Nu", "Clásica", d, appNow, appNow.AddDate(0, 0, 20))
	}

	err := ta.Add(ctx)
	require.ErrorIs(t, err, common.ErrLimitReached)
	assert.Contains(t, ta.out.String(), "Límite Free alcanzado")

	ta.out.Reset()
	require.NoError(t, ta.Pro(ctx, []string{"on"}))
	assert.Contains(t, ta.out.String(), "Fintrack Pro")

	ta.feed("Nu", "1", "4444", "2026-03-10", "2026-03-30")
	require.NoError(t, ta.Add(ctx))
	assert.Len(t, ta.cards.List(ctx, ""), 4)
}

func TestApp_ListAndPositions(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	late := ta.addCard(t, "Nu", "Clásica", "1111", appNow.AddDate(0, 0, 5), appNow.AddDate(0, 0, 25))
	overdue := ta.addCard(t, "Hey Banco", "Clásica", "2222", appNow.AddDate(0, 0, -20), appNow.AddDate(0, 0, -2))

	require.NoError(t, ta.List(ctx, nil))
	out := ta.out.String()
	assert.Less(t, strings.Index(out, "Hey Banco"), strings.Index(out, "Nu Clásica"), "overdue first")
	assert.Contains(t, out, "Pago vencido")
	assert.Contains(t, out, "Faltan 25 días")

	id, err := ta.idAt("1")
	require.NoError(t, err)
	assert.Equal(t, overdue.ID, id)
	id, err = ta.idAt("2")
	require.NoError(t, err)
	assert.Equal(t, late.ID, id)

	ta.out.Reset()
	require.NoError(t, ta.List(ctx, []string{"overdue"}))
	assert.NotContains(t, ta.out.String(), "Nu Clásica")
	_, err = ta.idAt("2")
	require.ErrorIs(t, err, errNoSuchPosition)

	require.Error(t, ta.List(ctx, []string{"soon"}))
}

func TestApp_PayToggles(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	c := ta.addCard(t, "BBVA", "Azul", "1234", appNow.AddDate(0, 0, -5), appNow.AddDate(0, 0, 2))
	require.NotEmpty(t, pendingIDs(t, ta))

	require.NoError(t, ta.List(ctx, nil))
	require.NoError(t, ta.Pay(ctx, []string{"1"}))
	assert.Contains(t, ta.out.String(), "BBVA Azul • 1234: Pagado")
	assert.Empty(t, pendingIDs(t, ta), "paying cancels reminders")

	require.NoError(t, ta.Pay(ctx, []string{"1"}))
	assert.Contains(t, ta.out.String(), "Faltan 2 días")
	assert.Contains(t, pendingIDs(t, ta), c.ID+"_due_0")
}

func TestApp_PayUnknownPosition(t *testing.T) {
	ta := newTestApp(t)

	err := ta.Pay(context.Background(), []string{"1"})
	require.ErrorIs(t, err, errNoSuchPosition)
	assert.Contains(t, ta.out.String(), "run 'list' first")
}

func TestApp_Edit(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	c := ta.addCard(t, "BBVA", "Azul", "1234", appNow.AddDate(0, 0, 1), appNow.AddDate(0, 0, 20))
	require.NoError(t, ta.List(ctx, nil))

	ta.feed("", "", "5678", "", "2026-04-02")
	require.NoError(t, ta.Edit(ctx, []string{"1"}))

	got, err := ta.cards.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "5678", got.LastDigits)
	assert.Equal(t, "Azul", got.CardType)
	assert.Equal(t, "bbva", got.BankCode)
	assert.Equal(t, c.CutDate.Format(DateLayout), got.CutDate.Format(DateLayout))
	assert.Equal(t, "2026-04-02", got.DueDate.Format(DateLayout))
	assert.Contains(t, ta.out.String(), "Card updated")
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	c := ta.addCard(t, "Nu", "Clásica", "1111", appNow.AddDate(0, 0, 3), appNow.AddDate(0, 0, 20))
	require.NoError(t, ta.List(ctx, nil))

	ta.feed("n")
	require.NoError(t, ta.Delete(ctx, []string{"1"}))
	assert.Len(t, ta.cards.List(ctx, ""), 1)

	ta.feed("1", "y")
	require.NoError(t, ta.Delete(ctx, nil))
	assert.Empty(t, ta.cards.List(ctx, ""))
	assert.Empty(t, pendingIDs(t, ta))

	_, err := ta.cards.Get(ctx, c.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = ta.idAt("1")
	require.ErrorIs(t, err, errNoSuchPosition)
}

func TestApp_AlertsDeliversDueReminders(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	printed := capturePrintln(t)

	c := ta.addCard(t, "BBVA", "Azul", "1234", appNow.AddDate(0, 0, -5), appNow.AddDate(0, 0, 2))

	ta.clock.Set(time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC))
	require.NoError(t, ta.Alerts(ctx))

	out := ta.out.String()
	assert.Contains(t, out, "Scheduled (1)")
	assert.Contains(t, out, "Delivered (1)")
	assert.Contains(t, out, c.ID+"_due_1")
	require.Len(t, *printed, 1)
	assert.Contains(t, (*printed)[0], "En 1 día(s) vence tu tarjeta BBVA Azul • 1234")
}

func TestApp_NotificationsDenied(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	ta.repos.Notifications.SetAuthorized(false)

	ta.addCard(t, "BBVA", "Azul", "1234", appNow.AddDate(0, 0, 1), appNow.AddDate(0, 0, 20))
	assert.Empty(t, pendingIDs(t, ta))

	ta.repos.Notifications.SetAuthorized(true)
	require.NoError(t, ta.Resync(ctx))
	assert.NotEmpty(t, pendingIDs(t, ta))
	assert.Contains(t, ta.out.String(), "Reminders rescheduled")
}

func TestApp_SummaryAndPro(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	ta.addCard(t, "Nu", "Clásica", "1111", appNow.AddDate(0, 0, -20), appNow.AddDate(0, 0, -1))
	ta.addCard(t, "Nu", "Clásica", "2222", appNow, appNow.AddDate(0, 0, 4))

	require.NoError(t, ta.Summary(ctx))
	out := ta.out.String()
	assert.Contains(t, out, "Por vencer 1")
	assert.Contains(t, out, "Vencidas 1")
	assert.Contains(t, out, "Activas 2")
	assert.Contains(t, out, "te quedan 1 espacio(s)")

	require.Error(t, ta.Pro(ctx, []string{"maybe"}))
	require.NoError(t, ta.Pro(ctx, []string{"on"}))
	require.NoError(t, ta.Pro(ctx, []string{"off"}))
	assert.False(t, ta.gate.IsEntitled(ctx))
}

func TestApp_Prompt(t *testing.T) {
	ta := newTestApp(t)
	assert.Empty(t, ta.prompt(), "no prompt when stdin is not a terminal")

	ta.interactive = true
	assert.Equal(t, "fintrack (free 0/3)>", ta.prompt())
}
