// Package cli provides the interactive Fintrack command-line client.
//
// It wires configuration, the local SQLite database, the card service and
// the reminder dispatcher, then runs a REPL over stdin. Cards are addressed
// by their position in the last list the user saw.
//
// Commands:
//   - list [all|pending|overdue|paid]
//   - add, edit [n], pay [n], delete [n]
//   - summary, banks, alerts, resync
//   - pro [on|off]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Due reminders are printed by a background dispatcher while it runs.
package cli
