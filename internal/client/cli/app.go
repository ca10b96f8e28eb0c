package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tempero/internal/client/client"
	"github.com/dmitrijs2005/tempero/internal/client/config"
	"github.com/dmitrijs2005/tempero/internal/client/models"
	"github.com/dmitrijs2005/tempero/internal/client/services"
	"github.com/dmitrijs2005/tempero/internal/client/session"
	"github.com/dmitrijs2005/tempero/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	postService services.PostService
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	closeFn     func() error
}

// NewApp wires storage, the session store, the REST client and the services.
// The session is hydrated before NewApp returns.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		storage session.Storage = session.NewMemoryStorage()
		closeFn                 = func() error { return nil }
	)

	if c.DatabasePath != "" {
		repos, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init session database: %w", err)
		}
		storage, closeFn = repos.Metadata, repos.Close
	}

	store := session.NewStore(storage, log)
	if err := store.Load(ctx); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("load session: %w", err)
	}

	api := client.NewHTTPClient(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(store.Token),
		client.WithLogger(log.With("component", "http")),
	)

	return &App{
		config:      c,
		authService: services.NewAuthService(api, store, log),
		postService: services.NewPostService(api, store, log),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		closeFn:     closeFn,
	}, nil
}

// Run greets the user, shows the feed when a session was restored and then
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeFn(); err != nil {
			a.log.Warn(ctx, "close session database", "error", err)
		}
	}()

	printlnFn("Bem-vindo ao Tempero Compartilhado (digite 'help' para ver os comandos)")
	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Sessão restaurada. Olá, %s!", a.status()))
		if err := a.List(ctx); err != nil {
			reportError(err)
		}
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

// status is the prompt label: the user's first name or "anonymous".
func (a *App) status() string {
	if u := a.authService.CurrentUser(); u != nil {
		if name := models.FirstName(u.Name); name != "" {
			return name
		}
		return u.Email
	}
	return "anonymous"
}

func (a *App) viewerID() models.ID {
	if u := a.authService.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}
