package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/grooviti/internal/api"
	"github.com/joshua-takyi/grooviti/internal/config"
	"github.com/joshua-takyi/grooviti/internal/connect"
	"github.com/joshua-takyi/grooviti/internal/container"
	"github.com/joshua-takyi/grooviti/internal/payment"
)

const usage = `usage: grooviti <command> [flags]

commands:
  explore        list events (-q to search by name)
  event <id>     show one event
  book           buy tickets (-event, -qty, -first, -last, -email, -phone)
  login          sign in (-email, -password)
  signup         create an account (-name, -email, -password)
  profile        show the signed-in user
  notifications  list notifications
  logout         sign out
  organizer      register as an organizer (-plan, -cycle, -name, -email, -password, -confirm, -phone, -org)
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	_ = godotenv.Load(".env.local")
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}
	logger := cfg.Logger(stderr)

	db, err := connect.OpenBadger(cfg.SessionDir, logger)
	if err != nil {
		logger.Warn("session will not be remembered", "error", err)
		db = nil
	}
	defer func() {
		if err := connect.CloseBadger(db); err != nil {
			logger.Error("Error closing session store", "error", err)
		}
	}()

	app := container.NewContainer(cfg, logger, db, &payment.PromptCheckout{In: stdin, Out: stdout})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Session.Restore(ctx); err != nil {
		logger.Warn("could not restore session", "error", err)
	}

	if err := cmd(ctx, app, args[1:], stdout); err != nil {
		var shown *shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(stderr, api.Message(err))
		}
		logger.Debug("command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

// shownError marks a failure whose message was already printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }
