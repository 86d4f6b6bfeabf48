package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/fintrack/internal/client/client"
	"github.com/dmitrijs2005/fintrack/internal/client/config"
	"github.com/dmitrijs2005/fintrack/internal/client/entitlement"
	"github.com/dmitrijs2005/fintrack/internal/client/notify"
	"github.com/dmitrijs2005/fintrack/internal/client/reminders"
	"github.com/dmitrijs2005/fintrack/internal/client/services"
	"github.com/dmitrijs2005/fintrack/internal/client/storage"
	"github.com/dmitrijs2005/fintrack/internal/filex"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

var errNoSuchPosition = errors.New("no card at that position")

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config     *config.Config
	repos      *client.Repositories
	cards      services.CardService
	gate       *entitlement.Gate
	dispatcher *notify.Dispatcher
	clock      timex.Clock
	loc        *time.Location
	log        logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// shown maps list positions (1-based, minus one) to card ids for the
	// last rendered list. A deleted card leaves an empty slot.
	mu    sync.Mutex
	shown []string
}

// NewApp opens the database named in c and wires the card service, the
// reminder scheduler and the dispatcher around it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	a := newApp(c, repos, timex.SystemClock{}, time.Local, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.interactive = isTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(c *config.Config, repos *client.Repositories, clock timex.Clock, loc *time.Location, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	repos.Notifications.SetAuthorized(c.NotificationsAuthorized)

	sched := reminders.NewScheduler(repos.Notifications,
		reminders.WithClock(clock),
		reminders.WithFireTime(c.ReminderHour, c.ReminderMinute),
		reminders.WithLocation(loc),
		reminders.WithLanguage(c.Language),
		reminders.WithLogger(log.With("component", "reminders")),
	)
	store := storage.NewCardStore(repos.Metadata, log.With("component", "storage"))
	gate := entitlement.NewGate(repos.Metadata, log)

	a := &App{
		config: c,
		repos:  repos,
		cards:  services.NewCardService(store, gate, sched, clock, log),
		gate:   gate,
		clock:  clock,
		loc:    loc,
		log:    log,
		reader: reader,
		out:    out,
	}
	a.dispatcher = notify.NewDispatcher(repos.Notifications, clock, c.DispatchInterval, a.printAlert, log.With("component", "dispatcher"))
	return a
}

// Run loads the cards, starts the dispatcher and blocks in the REPL until the
// user exits or input ends. The database is closed on return.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		if err := a.repos.DB.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close database", "error", err)
		}
	}()

	a.cards.Load(ctx)

	go a.dispatcher.Run(ctx)

	printlnFn(TitleStyle.Render("Fintrack") + " (type 'help' for commands)")
	_ = a.Summary(ctx)

	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if a.gate.IsEntitled(context.Background()) {
		return "fintrack (pro)>"
	}
	return fmt.Sprintf("fintrack (free %d/%d)>", a.cards.Summary(context.Background()).Total, a.gate.Limit())
}

func (a *App) printAlert(n notify.Notification) {
	printlnFn(renderAlert(n))
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) remember(ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shown = ids
}

func (a *App) forget(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.shown {
		if a.shown[i] == id {
			a.shown[i] = ""
		}
	}
}

// idAt resolves a 1-based position of the last rendered list.
func (a *App) idAt(pos string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n, err := ParsePosition(pos, len(a.shown))
	if err != nil {
		return "", err
	}
	id := a.shown[n-1]
	if id == "" {
		return "", fmt.Errorf("%w: %q", errNoSuchPosition, pos)
	}
	return id, nil
}
