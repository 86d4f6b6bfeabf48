package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Pay(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
	Banks(ctx context.Context) error
	Alerts(ctx context.Context) error
	Pro(ctx context.Context, args []string) error
	Resync(ctx context.Context) error
}

const helpText = "Available commands: (l)ist [all|pending|overdue|paid], add, edit [n], pay [n], delete [n], summary, banks, alerts, pro [on|off], resync, exit"

// runREPL starts a simple read–eval–print loop for the Fintrack CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a; the remaining tokens are passed as arguments.
// The loop exits on EOF or when the user types "exit" or "quit". The prompt
// comes from promptFn; an empty prompt is not printed.
//
// Errors returned by command handlers are not fatal: handlers report them to
// the user themselves and the loop keeps going.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "pay":
			_ = a.Pay(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "summary":
			_ = a.Summary(ctx)

		case "banks":
			_ = a.Banks(ctx)

		case "alerts":
			_ = a.Alerts(ctx)

		case "pro":
			_ = a.Pro(ctx, args)

		case "resync":
			_ = a.Resync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
