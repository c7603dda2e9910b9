package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Jobs(ctx context.Context, args []string) error
	Job(ctx context.Context, id string) error
	Post(ctx context.Context) error
	Apply(ctx context.Context, jobID string) error
	Mine(ctx context.Context) error
	Workers(ctx context.Context, args []string) error
	Hire(ctx context.Context, workerID, jobID string) error
	Hires(ctx context.Context) error
	Respond(ctx context.Context, requestID string, accept bool) error
	Earnings(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the GigLine CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                      — show available commands
//	  - register                  — create an account
//	  - login                     — authenticate
//	  - jobs [category [city]]    — browse open jobs (cached when offline)
//	  - job <id>                  — show one job
//	  - exit | quit               — leave the program
//
//	Logged in, additionally:
//	  - post                      — post a new job (clients)
//	  - apply <job-id>            — apply to a job (workers)
//	  - mine                      — list own jobs
//	  - workers [skill [city]]    — browse workers
//	  - hire <worker-id> <job-id> — send a direct-hire request
//	  - hires                     — list hire requests
//	  - accept <id> | decline <id>
//	  - earnings [period]         — earnings summary and history
//	  - whoami                    — show the authenticated profile
//	  - logout
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gigline %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: jobs, job <id>, post, apply <job-id>, mine, workers, hire <worker-id> <job-id>, hires, accept <id>, decline <id>, earnings, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, jobs, job <id>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "j", "jobs":
			_ = a.Jobs(ctx, args)

		case "job":
			if len(args) == 0 {
				printlnFn("Usage: job <id>")
				continue
			}
			_ = a.Job(ctx, args[0])

		case "post":
			_ = a.Post(ctx)

		case "apply":
			if len(args) == 0 {
				printlnFn("Usage: apply <job-id>")
				continue
			}
			_ = a.Apply(ctx, args[0])

		case "mine":
			_ = a.Mine(ctx)

		case "w", "workers":
			_ = a.Workers(ctx, args)

		case "hire":
			if len(args) < 2 {
				printlnFn("Usage: hire <worker-id> <job-id>")
				continue
			}
			_ = a.Hire(ctx, args[0], args[1])

		case "hires":
			_ = a.Hires(ctx)

		case "accept":
			if len(args) == 0 {
				printlnFn("Usage: accept <id>")
				continue
			}
			_ = a.Respond(ctx, args[0], true)

		case "decline":
			if len(args) == 0 {
				printlnFn("Usage: decline <id>")
				continue
			}
			_ = a.Respond(ctx, args[0], false)

		case "earnings":
			_ = a.Earnings(ctx, args)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
