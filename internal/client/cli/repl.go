package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/projectdesk/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentRole() models.Role
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Weather(ctx context.Context) error

	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Decide(ctx context.Context, action models.Action, args []string) error
	Check(ctx context.Context) error
}

// helpText lists the commands available in the current state.
func helpText(loggedIn bool, role models.Role) string {
	switch {
	case !loggedIn:
		return "Available commands: register, login, weather, exit"
	case role == models.RoleTeacher:
		return "Available commands: (r)efresh, (l)ist, add, edit <id>, delete <id>, approve <id>, reject <id>, check, whoami, weather, logout, exit"
	default:
		return "Available commands: (r)efresh, (l)ist, add, edit <id>, delete <id>, check, whoami, weather, logout, exit"
	}
}

// runREPL starts a simple read–eval–print loop for the projectdesk CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The remaining tokens are passed to commands that
// take a project id. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers are reported as one-line messages and
// the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pd %s> ", statusFn()))

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
			printlnFn(helpText(a.isLoggedIn(), a.currentRole()))

		case "register":
			a.report(a.Register(ctx))

		case "login":
			a.report(a.Login(ctx))

		case "logout":
			a.report(a.Logout(ctx))

		case "whoami":
			a.report(a.WhoAmI(ctx))

		case "weather":
			a.report(a.Weather(ctx))

		case "r", "refresh":
			a.report(a.Refresh(ctx))

		case "l", "list":
			a.report(a.List(ctx))

		case "add":
			a.report(a.Add(ctx))

		case "edit":
			a.report(a.Edit(ctx, args))

		case "delete":
			a.report(a.Delete(ctx, args))

		case "approve":
			a.report(a.Decide(ctx, models.ActionApprove, args))

		case "reject":
			a.report(a.Decide(ctx, models.ActionReject, args))

		case "check":
			a.report(a.Check(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
