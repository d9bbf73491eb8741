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

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Users(ctx context.Context, args []string) error
	SearchUsers(ctx context.Context, text string) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, id string) error

	Tasks(ctx context.Context) error
	MyTasks(ctx context.Context) error
	FilterTasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	EditTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
	ShowTask(ctx context.Context, id string) error

	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Export(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: whoami, users [page], usersearch <text>, useradd, useredit <id>, " +
		"tasks, mytasks, taskfilter, taskadd, taskedit <id>, taskdel <id>, taskshow <id>, " +
		"next, prev, export, logout, help, exit"
)

// idCommands take exactly one task or user id.
var idCommands = map[string]func(execIface, context.Context, string) error{
	"useredit": execIface.EditUser,
	"taskedit": execIface.EditTask,
	"taskdel":  execIface.DeleteTask,
	"taskshow": execIface.ShowTask,
}

// runREPL runs the read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to a. Commands other than help, login and exit require a
// session. Errors returned by handlers go to report and the loop goes on.
// The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, report func(error)) {
	for {
		printlnFn(fmt.Sprintf("taskadmin %s> ", statusFn()))

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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			handle(report, a.Login(ctx))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if _, known := commandNames[cmd]; known {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		if fn, ok := idCommands[cmd]; ok {
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			handle(report, fn(a, ctx, args[0]))
			continue
		}

		switch cmd {
		case "logout":
			handle(report, a.Logout(ctx))
		case "whoami":
			handle(report, a.WhoAmI(ctx))
		case "users":
			handle(report, a.Users(ctx, args))
		case "usersearch":
			handle(report, a.SearchUsers(ctx, strings.Join(args, " ")))
		case "useradd":
			handle(report, a.AddUser(ctx))
		case "tasks":
			handle(report, a.Tasks(ctx))
		case "mytasks":
			handle(report, a.MyTasks(ctx))
		case "taskfilter":
			handle(report, a.FilterTasks(ctx))
		case "taskadd":
			handle(report, a.AddTask(ctx))
		case "next":
			handle(report, a.Next(ctx))
		case "prev":
			handle(report, a.Prev(ctx))
		case "export":
			handle(report, a.Export(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var commandNames = map[string]struct{}{
	"logout": {}, "whoami": {}, "users": {}, "usersearch": {}, "useradd": {}, "useredit": {},
	"tasks": {}, "mytasks": {}, "taskfilter": {}, "taskadd": {}, "taskedit": {}, "taskdel": {},
	"taskshow": {}, "next": {}, "prev": {}, "export": {},
}

func handle(report func(error), err error) {
	if err != nil && report != nil {
		report(err)
	}
}
