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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, save bool) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: me, profile, (l)ist, add, show <id>, edit <id>, delete <id>, export [save], logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Errors returned by commands are printed and the loop goes on. It returns on
// end of input or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bm %s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			if quit := dispatch(ctx, a, parts[0], parts[1:]); quit {
				return
			}
		}

		if errors.Is(readErr, io.EOF) {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var err error

	withID := func(fn func(context.Context, string) error) {
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return
		}
		err = fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}

	case "register":
		err = a.Register(ctx)

	case "login":
		err = a.Login(ctx)

	case "logout":
		err = a.Logout(ctx)

	case "me":
		err = a.Me(ctx)

	case "profile":
		err = a.Profile(ctx)

	case "l", "list":
		err = a.List(ctx)

	case "add":
		err = a.Add(ctx)

	case "show":
		withID(a.Show)

	case "edit":
		withID(a.Edit)

	case "delete":
		withID(a.Delete)

	case "export":
		err = a.Export(ctx, len(args) > 0 && args[0] == "save")

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		printlnFn("Error:", err.Error())
	}
	return false
}
