package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/subdeck/internal/server"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the full authorization round trip: generate the transaction,
// open the browser, capture the redirect on the loopback server, and hand the
// parameters to the engine.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	authURL, err := r.engine.BeginLogin()
	if err != nil {
		if errors.Is(err, shared.ErrMissingClientID) {
			session := r.engine.Session()
			r.writePlain("✗ %s\n", session.Err)
		}
		return err
	}

	handler := server.NewCallbackHandler()
	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("callback server failed", "error", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	r.logger.Info("waiting for authorization", "listen", addr)

	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("could not open browser", "error", err)
		r.writePlain("Open this URL to sign in:\n%s\n", authURL)
	}

	timeout := time.Duration(cmd.Int("timeout")) * time.Second

	var params url.Values
	select {
	case params = <-handler.Result():
	case <-time.After(timeout):
		r.engine.Logout()
		return fmt.Errorf("%w: no authorization callback received within %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	session := r.engine.Initialize(ctx, params)
	if !session.Authenticated() {
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, session.Err)
	}

	r.writePlain("✓ Signed in as %s (%s)\n", session.Profile.Name, session.Profile.Email)
	return nil
}

// AuthStatus reports the current session state, validating any persisted
// token against the profile endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	session := r.engine.Initialize(ctx, url.Values{})

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"state":   session.State.String(),
			"profile": session.Profile,
		}, true)
	}

	if session.Authenticated() {
		r.writePlain("✓ Authenticated\n")
		r.writePlain("Account: %s (%s)\n", session.Profile.Name, session.Profile.Email)
		return nil
	}

	r.writePlain("✗ Not authenticated\n")
	if session.Err != "" {
		r.writePlain("Reason: %s\n", session.Err)
	}
	return nil
}

// AuthLogout clears the persisted session and any pending transaction.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.engine.Logout()
	r.writePlain("✓ Signed out\n")
	return nil
}
