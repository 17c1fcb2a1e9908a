package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Jobs(ctx context.Context) error
	Job(ctx context.Context, id string) error
	AddJob(ctx context.Context) error
	DeleteJob(ctx context.Context, id string) error
}

func helpText(loggedIn bool) string {
	if loggedIn {
		return "Available commands: jobs, job <id>, addjob, deletejob <id>, me, avatar <file>, logout, exit"
	}
	return "Available commands: signup, login, jobs, job <id>, exit"
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "jobboard%s> ", statusFn())

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}

		cmd, args := parts[0], parts[1:]
		var err error

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText(a.isLoggedIn()))

		case "signup", "register":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "me":
			err = a.Me(ctx)

		case "avatar":
			if len(args) != 1 {
				fmt.Fprintln(w, "usage: avatar <file>")
				continue
			}
			err = a.Avatar(ctx, args[0])

		case "jobs", "list":
			err = a.Jobs(ctx)

		case "job", "show":
			if len(args) != 1 {
				fmt.Fprintln(w, "usage: job <id>")
				continue
			}
			err = a.Job(ctx, args[0])

		case "addjob":
			err = a.AddJob(ctx)

		case "deletejob":
			if len(args) != 1 {
				fmt.Fprintln(w, "usage: deletejob <id>")
				continue
			}
			err = a.DeleteJob(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", describeError(err))
		}
		if readErr != nil {
			return
		}
	}
}
