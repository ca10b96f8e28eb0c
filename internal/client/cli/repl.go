package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ping(ctx context.Context) error
	List(ctx context.Context) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Comandos: register, login, list, ping, whoami, help, exit"
	helpLoggedIn  = "Comandos: (l)ist, post, edit <id>, delete <id>, whoami, ping, logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The prompt shows statusFn(). Handler errors are rendered with reportError
// and never end the loop. Commands that need an id print their usage when it
// is missing.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("tempero (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "post":
			cmdErr = a.Post(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Uso: edit <id>")
				continue
			}
			cmdErr = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Uso: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Até logo!")
			return

		default:
			printlnFn("Comando desconhecido:", cmd)
		}

		if cmdErr != nil {
			reportError(cmdErr)
		}
	}
}
