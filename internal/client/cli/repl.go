package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/ticketapp/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errLoginRequired is returned by views the guard redirected to the login page.
var errLoginRequired = errors.New("login required")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Go(ctx context.Context, path string) error
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Tickets(ctx context.Context, status string) error
	AddTicket(ctx context.Context) error
	EditTicket(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	DeleteTicket(ctx context.Context, id string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: go <path>, signup, login, whoami, refresh, dashboard, tickets, export <file>, import <file>, exit"
	helpLoggedIn  = "Available commands: go <path>, dashboard, tickets [status], add, edit <id>, status <id> <status>, delete <id>, whoami, refresh, logout, export <file>, import <file>, exit"
)

// runREPL starts a simple read–eval–print loop for the ticketapp client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on end of input or when the
// user types "exit" or "quit".
//
// Command errors never end the loop. They are reported to the user in short
// form; handlers log the detail themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) > 0 {
			if quit := dispatch(ctx, a, parts[0], parts[1:]); quit {
				return
			}
		}
		if eof {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should stop.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var err error

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
			return false
		}
		err = a.Go(ctx, args[0])

	case "signup", "register":
		err = a.Signup(ctx)

	case "login":
		err = a.Login(ctx)

	case "logout":
		err = a.Logout(ctx)

	case "whoami":
		err = a.Whoami(ctx)

	case "refresh":
		err = a.Refresh(ctx)

	case "dashboard":
		err = a.Dashboard(ctx)

	case "l", "list", "tickets":
		status := ""
		if len(args) > 0 {
			status = args[0]
		}
		err = a.Tickets(ctx, status)

	case "add":
		err = a.AddTicket(ctx)

	case "edit":
		if len(args) != 1 {
			printlnFn("Usage: edit <id>")
			return false
		}
		err = a.EditTicket(ctx, args[0])

	case "status":
		if len(args) != 2 {
			printlnFn("Usage: status <id> <open|in_progress|closed>")
			return false
		}
		err = a.SetStatus(ctx, args[0], args[1])

	case "delete", "rm":
		if len(args) != 1 {
			printlnFn("Usage: delete <id>")
			return false
		}
		err = a.DeleteTicket(ctx, args[0])

	case "export":
		if len(args) != 1 {
			printlnFn("Usage: export <file>")
			return false
		}
		err = a.Export(ctx, args[0])

	case "import":
		if len(args) != 1 {
			printlnFn("Usage: import <file>")
			return false
		}
		err = a.Import(ctx, args[0])

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		printlnFn("Error:", userMessage(err))
	}
	return false
}

// userMessage turns a command error into something fit for the prompt.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errLoginRequired):
		return "please log in first (type 'login' or 'signup')"
	case errors.Is(err, common.ErrorUnauthorized):
		return "invalid email or password"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, common.ErrQuotaExceeded):
		return "local storage is full"
	case errors.Is(err, common.ErrMalformedData):
		return "stored data is corrupted: " + err.Error()
	default:
		return err.Error()
	}
}
