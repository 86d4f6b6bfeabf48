package notify

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/reminders"
	"github.com/dmitrijs2005/fintrack/internal/dbx"
)

type State string

const (
	StatePending   State = "pending"
	StateDelivered State = "delivered"
)

// Notification is a stored alert.
type Notification struct {
	ID          string
	CardID      string
	Axis        reminders.Axis
	Offset      int
	Title       string
	Body        string
	FireAt      time.Time
	State       State
	DeliveredAt time.Time
}

type SQLiteOutbox struct {
	db         *sql.DB
	authorized atomic.Bool
}

// NewSQLiteOutbox returns an outbox with notifications authorized.
func NewSQLiteOutbox(db *sql.DB) *SQLiteOutbox {
	o := &SQLiteOutbox{db: db}
	o.authorized.Store(true)
	return o
}

// SetAuthorized records the user's notification permission.
func (o *SQLiteOutbox) SetAuthorized(granted bool) {
	o.authorized.Store(granted)
}

func (o *SQLiteOutbox) Authorized(ctx context.Context) (bool, error) {
	return o.authorized.Load(), nil
}

// Add stores r as pending, replacing any alert with the same id.
func (o *SQLiteOutbox) Add(ctx context.Context, r reminders.Request) error {
	_, err := o.db.ExecContext(ctx, `
		INSERT INTO notifications (id, card_id, axis, offset_days, title, body, fire_at, state, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 'pending', NULL)
		ON CONFLICT(id) DO UPDATE SET
			card_id = excluded.card_id,
			axis = excluded.axis,
			offset_days = excluded.offset_days,
			title = excluded.title,
			body = excluded.body,
			fire_at = excluded.fire_at,
			state = 'pending',
			delivered_at = NULL
	`, r.ID, r.CardID, string(r.Axis), r.Offset, r.Title, r.Body, r.FireAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add notification[%s]: %w", r.ID, err)
	}
	return nil
}

func (o *SQLiteOutbox) RemovePending(ctx context.Context, ids []string) error {
	return o.remove(ctx, StatePending, ids)
}

func (o *SQLiteOutbox) RemoveDelivered(ctx context.Context, ids []string) error {
	return o.remove(ctx, StateDelivered, ids)
}

func (o *SQLiteOutbox) remove(ctx context.Context, state State, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(state))
	for _, id := range ids {
		args = append(args, id)
	}
	q := `DELETE FROM notifications WHERE state = ? AND id IN (` + placeholders(len(ids)) + `)`
	if _, err := o.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("failed to remove %s notifications: %w", state, err)
	}
	return nil
}

// Pending lists pending alerts ordered by fire time.
func (o *SQLiteOutbox) Pending(ctx context.Context) ([]Notification, error) {
	return o.list(ctx, o.db, StatePending, "")
}

// Delivered lists delivered alerts ordered by fire time.
func (o *SQLiteOutbox) Delivered(ctx context.Context) ([]Notification, error) {
	return o.list(ctx, o.db, StateDelivered, "")
}

// Deliver marks every pending alert with fire time at or before now as
// delivered and returns them.
func (o *SQLiteOutbox) Deliver(ctx context.Context, now time.Time) ([]Notification, error) {
	var due []Notification
	err := dbx.WithTx(ctx, o.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		due, err = o.list(ctx, tx, StatePending, "AND fire_at <= ?", now.UnixMilli())
		if err != nil {
			return err
		}
		for i := range due {
			_, err := tx.ExecContext(ctx,
				`UPDATE notifications SET state = 'delivered', delivered_at = ? WHERE id = ?`,
				now.UnixMilli(), due[i].ID)
			if err != nil {
				return fmt.Errorf("failed to mark notification[%s] delivered: %w", due[i].ID, err)
			}
			due[i].State = StateDelivered
			due[i].DeliveredAt = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

func (o *SQLiteOutbox) list(ctx context.Context, db dbx.DBTX, state State, cond string, condArgs ...any) ([]Notification, error) {
	args := append([]any{string(state)}, condArgs...)
	rows, err := db.QueryContext(ctx, `
		SELECT id, card_id, axis, offset_days, title, body, fire_at, state, delivered_at
		FROM notifications WHERE state = ? `+cond+` ORDER BY fire_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s notifications: %w", state, err)
	}
	defer rows.Close()

	result := make([]Notification, 0)
	for rows.Next() {
		var (
			n           Notification
			axis, st    string
			fireAt      int64
			deliveredAt sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.CardID, &axis, &n.Offset, &n.Title, &n.Body, &fireAt, &st, &deliveredAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		n.Axis = reminders.Axis(axis)
		n.State = State(st)
		n.FireAt = time.UnixMilli(fireAt)
		if deliveredAt.Valid {
			n.DeliveredAt = time.UnixMilli(deliveredAt.Int64)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
	}
	return result, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
