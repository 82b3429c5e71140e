package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	reportUploads()

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Theme(ctx context.Context, args []string) error

	List(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Tab(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	View(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	URL(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, theme, help, exit"
	helpUser  = "Available commands: (ls) list, refresh, tab <all|image|video|audio|document>, search [term], " +
		"sort <date|name|none>, view <list|medium|tiles>, next, prev, page <n>, show <n|id>, url <n|id>, " +
		"download <n|id> [dest], upload [path], delete <n|id>, status, theme, logout, help, exit"
)

// msgLoginFirst is printed for file commands issued while logged out.
const msgLoginFirst = "Please login first"

// runREPL starts a simple read–eval–print loop for the uploader CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit", and when ctx is cancelled.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). Before each prompt
// the outcome of finished background uploads is reported.
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - theme            toggle dark mode
//	  - exit | quit      leave the program
//
//	Logged in, additionally:
//	  - list | ls, refresh, tab, search, sort, view, next, prev, page
//	  - show, url, download, upload, delete, status
//	  - logout
//
// Any errors returned by command handlers are ignored here; handlers print
// or log their own errors so that a failing command never ends the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			printlnFn()
			return
		}

		a.reportUploads()
		printFn(fmt.Sprintf("up %s> ", statusFn()))

		line, err := readLine(ctx, reader)
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]
		if cmd == "search" {
			args = rawArgs(line, parts[0])
		}

		if requiresLogin(cmd) && !a.isLoggedIn() {
			printlnFn(msgLoginFirst)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "theme":
			_ = a.Theme(ctx, args)

		case "ls", "list":
			_ = a.List(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx, args)

		case "tab":
			_ = a.Tab(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "sort":
			_ = a.Sort(ctx, args)

		case "view":
			_ = a.View(ctx, args)

		case "next":
			_ = a.Next(ctx, args)

		case "prev":
			_ = a.Prev(ctx, args)

		case "page":
			_ = a.Page(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "url":
			_ = a.URL(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "upload":
			_ = a.Upload(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "status":
			_ = a.Status(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// readLine reads one line from reader, giving up when ctx is cancelled.
// The pending read is abandoned in that case; callers must stop reading.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// rawArgs returns what follows the command token on line as a single
// argument, keeping inner whitespace intact. Blank remainders give nil.
func rawArgs(line, cmdToken string) []string {
	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimSpace(strings.TrimPrefix(rest, cmdToken))
	if rest == "" {
		return nil
	}
	return []string{rest}
}

func requiresLogin(cmd string) bool {
	switch cmd {
	case "logout", "ls", "list", "refresh", "tab", "search", "sort", "view", "next", "prev", "page",
		"show", "url", "download", "upload", "delete", "status":
		return true
	}
	return false
}
