package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Logout(ctx context.Context) error
}

func (a *App) getStatus() string {
	if a.login != "" {
		return fmt.Sprintf("(%s) ", a.login)
	}
	return ""
}

// Root starts the command loop: it reads a line, parses the first token as
// the command, and dispatches. The loop exits on EOF or "exit"/"quit".
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to the accounts CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("accounts %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		if done := dispatch(ctx, a, scanner.Text()); done {
			break
		}
	}
}

// dispatch runs one REPL command. It returns true when the loop should exit.
func dispatch(ctx context.Context, a execIface, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	var err error

	switch parts[0] {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: whoami, list, logout, exit")
		} else {
			printlnFn("Available commands: register, login, list, exit")
		}
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)
	case "list":
		err = a.List(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "exit", "quit":
		return true
	default:
		printlnFn("Unknown command (type 'help' for commands)")
	}

	if err != nil {
		printlnFn("Error:", err.Error())
	}

	return false
}
