// Package notify is the local notification delivery system used by the CLI.
//
// SQLiteOutbox keeps pending and delivered alerts in the notifications
// table and implements reminders.Notifier. Dispatcher polls the outbox on an
// interval, marks alerts whose fire time has come as delivered and hands
// them to a sink (the terminal, in the CLI).
package notify
