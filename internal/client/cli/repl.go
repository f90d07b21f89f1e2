package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	busy() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Suggest(ctx context.Context) error
	Calendar(ctx context.Context) error
	Diagnose(ctx context.Context) error
	Scheme(ctx context.Context) error
	Password(ctx context.Context) error
	Settings(ctx context.Context) error
	Profile(ctx context.Context) error
	Lang(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, signup, lang, help, exit"
	helpLoggedIn  = "Available commands: suggest, calendar, diagnose, scheme, password, settings, profile, lang, logout, help, exit"
)

// errBusy is printed when a command is entered while a request is in flight.
var errBusy = errors.New("a request is still in progress, please wait")

// runREPL starts a simple read–eval–print loop for the agroassist CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
// Commands that need an account are refused until the user logs in, and
// every command except help and exit is refused while a request is pending.
// Handler errors are printed and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "agro %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := canonical(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
			continue
		case "exit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		handler, needsLogin, ok := lookup(a, cmd, args)
		if !ok {
			fmt.Fprintln(out, "Unknown command:", cmd)
			continue
		}
		if needsLogin && !a.isLoggedIn() {
			fmt.Fprintln(out, "Please login first")
			continue
		}
		if !needsLogin && a.isLoggedIn() && (cmd == "login" || cmd == "signup") {
			fmt.Fprintln(out, "Already logged in, logout first")
			continue
		}
		if a.busy() {
			fmt.Fprintln(out, errBusy)
			continue
		}

		if err := handler(ctx); err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

var aliases = map[string]string{
	"?":        "help",
	"quit":     "exit",
	"register": "signup",
	"schemes":  "scheme",
}

// canonical lower-cases name and resolves aliases.
func canonical(name string) string {
	name = strings.ToLower(name)
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

func lookup(a execIface, cmd string, args []string) (func(context.Context) error, bool, bool) {
	switch cmd {
	case "login":
		return a.Login, false, true
	case "signup":
		return a.Signup, false, true
	case "lang":
		return func(ctx context.Context) error { return a.Lang(ctx, args) }, false, true
	case "logout":
		return a.Logout, true, true
	case "suggest":
		return a.Suggest, true, true
	case "calendar":
		return a.Calendar, true, true
	case "diagnose":
		return a.Diagnose, true, true
	case "scheme":
		return a.Scheme, true, true
	case "password":
		return a.Password, true, true
	case "settings":
		return a.Settings, true, true
	case "profile":
		return a.Profile, true, true
	}
	return nil, false, false
}
