package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// Sink receives alerts as they become due.
type Sink func(Notification)

type Dispatcher struct {
	outbox   *SQLiteOutbox
	clock    timex.Clock
	interval time.Duration
	sink     Sink
	log      logging.Logger
}

func NewDispatcher(o *SQLiteOutbox, clock timex.Clock, interval time.Duration, sink Sink, log logging.Logger) *Dispatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Dispatcher{outbox: o, clock: clock, interval: interval, sink: sink, log: log}
}

// Tick delivers everything that is due now and returns how many alerts
// were handed to the sink.
func (d *Dispatcher) Tick(ctx context.Context) int {
	due, err := d.outbox.Deliver(ctx, d.clock.Now())
	if err != nil {
		d.log.Warn(ctx, "failed to deliver notifications", "error", err)
		return 0
	}
	for _, n := range due {
		d.log.Debug(ctx, "notification delivered", "id", n.ID)
		if d.sink != nil {
			d.sink(n)
		}
	}
	return len(due)
}

// Run ticks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.Tick(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}
