package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	// refresh re-resolves the current location if the session changed
	// since the last command.
	refresh(ctx context.Context)

	Go(ctx context.Context, path string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Activate(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context, page int) error
	Filter(ctx context.Context, text string) error
	FilterCategory(ctx context.Context, arg string) error
	FilterRole(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Show(ctx context.Context, id int64) error
	Profile(ctx context.Context, edit bool) error
	ChangePassword(ctx context.Context) error
	Whoami(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, register, activate, forgot, reset, go <path>, help, exit"
	helpLoggedIn  = "Available commands: list [page], filter <text>, category <id|all>, role <all|admin|user>, " +
		"add, edit <id>, delete <id>, show <id>, profile [edit], passwd, whoami, go <path>, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the notekeeper CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Form prompts inside the handlers read from the same reader, so typed-ahead
// input is never lost between the loop and a handler.
//
// Before every prompt a.refresh is called so that a session change made by
// another process (or a forced logout on 401) is reflected in the screen.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		a.refresh(ctx)
		printlnFn(fmt.Sprintf("nk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "activate":
			_ = a.Activate(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			page := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					printlnFn("Usage: list [page]")
					continue
				}
				page = n
			}
			_ = a.List(ctx, page)

		case "filter":
			_ = a.Filter(ctx, strings.Join(args, " "))

		case "category":
			if len(args) != 1 {
				printlnFn("Usage: category <id|all>")
				continue
			}
			_ = a.FilterCategory(ctx, args[0])

		case "role":
			if len(args) != 1 {
				printlnFn("Usage: role <all|admin|user>")
				continue
			}
			_ = a.FilterRole(ctx, args[0])

		case "add":
			_ = a.Add(ctx)

		case "edit", "delete", "show":
			id, ok := parseID(cmd, args)
			if !ok {
				continue
			}
			switch cmd {
			case "edit":
				_ = a.Edit(ctx, id)
			case "delete":
				_ = a.Delete(ctx, id)
			default:
				_ = a.Show(ctx, id)
			}

		case "profile":
			_ = a.Profile(ctx, len(args) > 0 && args[0] == "edit")

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseID(cmd string, args []string) (int64, bool) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid id:", args[0])
		return 0, false
	}
	return id, true
}
