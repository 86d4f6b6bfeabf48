// Package client bootstraps local persistence for the Fintrack CLI.
//
// OpenDatabase opens the SQLite file (pure-Go modernc driver), limits the
// pool to one connection and applies the embedded goose migrations.
// NewRepositories wires the repositories that live on top of it.
package client
