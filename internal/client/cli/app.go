// Package cli implements the client's screens as an interactive
// read-eval-print loop: sign-in, sign-up, the provider dashboard, the
// booking flow, and the profile editor.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"gobarber-cli/internal/client/api"
	"gobarber-cli/internal/client/config"
	"gobarber-cli/internal/client/session"
	"gobarber-cli/internal/client/storage"
	"gobarber-cli/internal/logging"
)

// App wires the screens to the session store and the API gateway.
type App struct {
	config *config.Config
	db     *sql.DB
	store  *session.Store
	api    api.Client
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and builds the store and gateway. The
// gateway reads its bearer token from the store on every request, so screens
// pick up a sign-in immediately.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// The store and the gateway reference each other: the gateway needs the
	// store's token, the store signs in through the gateway. The closure
	// breaks the cycle; no request runs before both exist.
	var store *session.Store
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, func() string { return store.Token() }, cfg.RequestTimeout)
	store = session.NewStore(db, apiClient, log)

	return &App{
		config: cfg,
		db:     db,
		store:  store,
		api:    apiClient,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run restores any persisted session and drives the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.store.Restore(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if sess, ok := a.store.Current(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", sess.User.Name)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.State() == session.StateSignedIn
}

func (a *App) status() string {
	switch a.store.State() {
	case session.StateLoading:
		return "loading"
	case session.StateSignedIn:
		sess, _ := a.store.Current()
		return sess.User.Email
	default:
		return "signed out"
	}
}

// Whoami prints the signed-in user.
func (a *App) Whoami(ctx context.Context) error {
	sess, ok := a.store.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", sess.User.Name, sess.User.Email)
	if sess.User.AvatarURL != "" {
		fmt.Fprintf(a.out, "avatar: %s\n", sess.User.AvatarURL)
	}
	return nil
}

// Logout clears the session. Safe to call when already signed out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.SignOut(ctx); err != nil {
		fmt.Fprintf(a.out, "Error signing out: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
