package reminders

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// Request is a one-shot alert handed to the delivery system.
type Request struct {
	ID     string
	CardID string
	Axis   Axis
	Offset int
	Title  string
	Body   string
	FireAt time.Time
}

// Notifier is the notification delivery system. Implementations may apply
// requests asynchronously; the scheduler never waits for delivery.
type Notifier interface {
	// Authorized reports whether the user allowed notifications.
	Authorized(ctx context.Context) (bool, error)
	// Add registers a one-shot alert, replacing any pending one with the same id.
	Add(ctx context.Context, r Request) error
	// RemovePending cancels pending alerts by id.
	RemovePending(ctx context.Context, ids []string) error
	// RemoveDelivered removes already delivered alerts by id.
	RemoveDelivered(ctx context.Context, ids []string) error
}

// Target is one computed reminder slot of an axis.
type Target struct {
	ID     string
	Offset int
	FireAt time.Time
}

// Scheduler converts card dates into notifier requests.
type Scheduler struct {
	notifier Notifier
	clock    timex.Clock
	loc      *time.Location
	hour     int
	minute   int
	texts    *Texts
	log      logging.Logger
}

type Option func(*Scheduler)

// WithClock sets the source of "now" used to skip past fire times.
func WithClock(c timex.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithFireTime sets the local time of day reminders fire at.
func WithFireTime(hour, minute int) Option {
	return func(s *Scheduler) {
		if hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			s.hour, s.minute = hour, minute
		}
	}
}

// WithLocation sets the time zone whose calendar the fire times follow.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLanguage(lang string) Option {
	return func(s *Scheduler) { s.texts = NewTexts(lang) }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// NewScheduler returns a scheduler firing at 09:00 local time with Spanish texts.
func NewScheduler(n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: n,
		clock:    timex.SystemClock{},
		loc:      time.Local,
		hour:     9,
		texts:    NewTexts(""),
		log:      logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Targets computes the three reminder slots of an axis. It does not look at
// the clock or the paid flag.
func (s *Scheduler) Targets(c models.Card, axis Axis) []Target {
	base := c.DueDate
	if axis == AxisCut {
		base = c.CutDate
	}
	at := timex.AtTimeOfDay(base, s.hour, s.minute, s.loc)

	out := make([]Target, 0, len(Offsets))
	for _, off := range Offsets {
		out = append(out, Target{
			ID:     ID(c.ID, axis, off),
			Offset: off,
			FireAt: at.AddDate(0, 0, -off),
		})
	}
	return out
}

// ScheduleDue replaces the due-date reminders of c. The paid flag is not
// consulted for this axis.
func (s *Scheduler) ScheduleDue(ctx context.Context, c models.Card) {
	s.schedule(ctx, c, AxisDue)
}

// ScheduleCut replaces the cut-date reminders of c. Paid cards get none.
func (s *Scheduler) ScheduleCut(ctx context.Context, c models.Card) {
	s.schedule(ctx, c, AxisCut)
}

// CancelDue removes pending and delivered due-date reminders of c.
func (s *Scheduler) CancelDue(ctx context.Context, c models.Card) {
	s.cancel(ctx, c.ID, AxisDue)
}

// CancelCut removes pending and delivered cut-date reminders of c.
func (s *Scheduler) CancelCut(ctx context.Context, c models.Card) {
	s.cancel(ctx, c.ID, AxisCut)
}

// CancelAll removes every reminder of c, e.g. when it is deleted.
func (s *Scheduler) CancelAll(ctx context.Context, c models.Card) {
	s.CancelDue(ctx, c)
	s.CancelCut(ctx, c)
}

// Resync cancels both axes of c and schedules them again.
func (s *Scheduler) Resync(ctx context.Context, c models.Card) {
	s.CancelDue(ctx, c)
	s.CancelCut(ctx, c)
	s.ScheduleDue(ctx, c)
	s.ScheduleCut(ctx, c)
}

// ResyncAll resyncs every card. The end state depends only on the cards and
// the clock, so it is safe to call at startup and as often as needed.
func (s *Scheduler) ResyncAll(ctx context.Context, cards []models.Card) {
	for _, c := range cards {
		s.Resync(ctx, c)
	}
	s.log.Debug(ctx, "reminders resynced", "cards", len(cards))
}

func (s *Scheduler) schedule(ctx context.Context, c models.Card, axis Axis) {
	log := s.log.With("card_id", c.ID, "axis", string(axis))

	if err := s.notifier.RemovePending(ctx, IDs(c.ID, axis)); err != nil {
		log.Warn(ctx, "failed to remove pending reminders", "error", err)
	}

	ok, err := s.notifier.Authorized(ctx)
	if err != nil {
		log.Warn(ctx, "failed to read notification authorization", "error", err)
		return
	}
	if !ok {
		log.Debug(ctx, "notifications not authorized, skipping")
		return
	}
	if axis == AxisCut && c.IsPaid {
		return
	}

	now := s.clock.Now()
	for _, t := range s.Targets(c, axis) {
		if !t.FireAt.After(now) {
			continue
		}
		r := Request{
			ID:     t.ID,
			CardID: c.ID,
			Axis:   axis,
			Offset: t.Offset,
			Title:  Title,
			Body:   s.texts.Body(c, axis, t.Offset),
			FireAt: t.FireAt,
		}
		if err := s.notifier.Add(ctx, r); err != nil {
			log.Warn(ctx, "failed to add reminder", "id", t.ID, "error", err)
		}
	}
}

func (s *Scheduler) cancel(ctx context.Context, cardID string, axis Axis) {
	ids := IDs(cardID, axis)
	if err := s.notifier.RemovePending(ctx, ids); err != nil {
		s.log.Warn(ctx, "failed to remove pending reminders", "card_id", cardID, "axis", string(axis), "error", err)
	}
	if err := s.notifier.RemoveDelivered(ctx, ids); err != nil {
		s.log.Warn(ctx, "failed to remove delivered reminders", "card_id", cardID, "axis", string(axis), "error", err)
	}
}
