// Package reminders keeps the pending alerts of the notification delivery
// system in sync with the cut and due dates of every card.
//
// Each card has two axes (due, cut) and each axis has exactly three alerts,
// fired at a fixed local time 3, 1 and 0 days before the axis date. Alert
// ids have the shape "{cardID}_{axis}_{offset}"; they carry no content, so
// cancelling and re-registering them is idempotent and a resync can never
// duplicate or orphan an alert.
//
// Scheduling always cancels the axis first and only then registers the
// alerts whose fire time is still in the future. When the delivery system
// reports that notifications are not authorized, scheduling is a no-op; the
// next resync is the only retry.
package reminders
