package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultAuthURL    = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL   = "https://oauth2.googleapis.com/token"
	defaultProfileURL = "https://www.googleapis.com/oauth2/v1/userinfo?alt=json"

	// defaultValidateInterval is how often an authenticated session re-checks
	// token liveness against the profile endpoint.
	defaultValidateInterval = 5 * time.Minute
)

// Scopes requested at login. youtube.force-ssl is required specifically for
// the unsubscribe mutation; readonly alone cannot delete a subscription.
var scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/youtube.force-ssl",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// EngineConfig configures the auth [Engine].
//
// ClientSecret is optional (PKCE public client). The endpoint URLs default to
// Google's and are overridable for tests.
type EngineConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	AuthURL    string
	TokenURL   string
	ProfileURL string

	HTTPClient       *http.Client
	ValidateInterval time.Duration
}

// Engine is the OAuth 2.0 authorization-code-with-PKCE state machine.
//
// It owns the [Session] read model: consumers read through [Engine.Session],
// never through ambient state. Every external call degrades to an explicit
// error state; the engine never retries, the user must re-initiate login.
type Engine struct {
	cfg    EngineConfig
	store  *SessionStore
	client *http.Client
	logger *log.Logger

	mu      sync.Mutex
	session Session

	// OnExpired is invoked when periodic re-validation detects an
	// invalidated token. The CLI uses it to force the user back to login.
	OnExpired func()
}

// NewEngine creates an Engine in the Uninitialized state.
func NewEngine(cfg EngineConfig, store *SessionStore, logger *log.Logger) *Engine {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultProfileURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.ValidateInterval <= 0 {
		cfg.ValidateInterval = defaultValidateInterval
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Engine{
		cfg:     cfg,
		store:   store,
		client:  cfg.HTTPClient,
		logger:  logger,
		session: Session{State: StateUninitialized},
	}
}

// Session returns a snapshot of the current read model.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

func (e *Engine) setSession(s Session) {
	e.mu.Lock()
	e.session = s
	e.mu.Unlock()
}

// oauthConfig builds the [oauth2.Config] used for the authorization URL and
// the token exchange.
func (e *Engine) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     e.cfg.ClientID,
		ClientSecret: e.cfg.ClientSecret,
		RedirectURL:  e.cfg.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.cfg.AuthURL,
			TokenURL: e.cfg.TokenURL,
		},
	}
}

// BeginLogin generates a fresh authorization transaction and returns the
// provider URL to open. Fails without side effects on the identity provider
// when no client id is configured: the engine moves to StateError and no
// redirect URL is produced.
func (e *Engine) BeginLogin() (string, error) {
	if e.cfg.ClientID == "" {
		e.setSession(Session{State: StateError, Err: "client_id is not configured; set credentials.youtube.client_id in config.toml"})
		return "", shared.ErrMissingClientID
	}

	verifier, err := GenerateVerifier()
	if err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}
	state, err := GenerateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	if err := e.store.SaveTransaction(state, verifier); err != nil {
		return "", fmt.Errorf("failed to persist authorization transaction: %w", err)
	}

	authURL := e.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("code_challenge", CodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	return authURL, nil
}

// Initialize runs the startup transition against redirect callback
// parameters. The three cases are mutually exclusive:
//
//   - "error" present: classify, clear everything, end Unauthenticated.
//   - "code" and "state" present: consume the pending transaction and
//     run the token exchange.
//   - neither: restore a persisted session, validating its token against
//     the profile endpoint.
//
// The returned session equals the engine's published state.
func (e *Engine) Initialize(ctx context.Context, params url.Values) Session {
	e.setSession(Session{State: StateInitializing})

	switch {
	case params.Get("error") != "":
		e.handleErrorCallback(params.Get("error"), params.Get("error_description"))
	case params.Get("code") != "" && params.Get("state") != "":
		if err := e.HandleCallback(ctx, params.Get("code"), params.Get("state")); err != nil {
			e.logger.Warn("authorization callback failed", "error", err)
		}
	default:
		e.restore(ctx)
	}

	return e.Session()
}

// handleErrorCallback classifies known provider error codes into user-facing
// messages and fails closed.
func (e *Engine) handleErrorCallback(code, description string) {
	var msg string
	switch code {
	case "redirect_uri_mismatch":
		msg = fmt.Sprintf("redirect URI %s is not registered for this client; add it to the authorized redirect URIs in the Google Cloud Console", e.cfg.RedirectURI)
	case "access_denied":
		msg = "access was denied; you must accept the requested permissions to continue"
	default:
		msg = "authentication failed: " + code
		if description != "" {
			msg += " (" + description + ")"
		}
	}

	e.logger.Warn("authorization error callback", "code", code)
	e.store.Clear()
	e.setSession(Session{State: StateUnauthenticated, Err: msg})
}

// HandleCallback consumes the pending transaction and exchanges the
// authorization code for an access token.
//
// Fails closed: a missing transaction or a state mismatch is treated as a
// CSRF violation and clears all session and transaction state regardless of
// whether the code is otherwise valid. The transaction is deleted before the
// exchange so it can never be replayed.
func (e *Engine) HandleCallback(ctx context.Context, code, state string) error {
	storedState, verifier, ok := e.store.LoadTransaction()
	if !ok {
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: "no pending login attempt; please sign in again"})
		return shared.ErrNoTransaction
	}

	// Single use: consumed now, success or failure.
	e.store.ClearTransaction()

	if state != storedState {
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: "login request could not be verified; please sign in again"})
		return shared.ErrStateMismatch
	}

	token, err := e.exchange(ctx, code, verifier)
	if err != nil {
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: err.Error()})
		return err
	}

	profile, err := e.fetchProfile(ctx, token)
	if err != nil {
		// A token without a reachable profile is a failed authentication,
		// not a degraded-profile session.
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: "signed in, but your profile could not be loaded; please try again"})
		return fmt.Errorf("%w: %v", shared.ErrProfileFetch, err)
	}

	if err := e.store.Save(token, profile); err != nil {
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: err.Error()})
		return err
	}

	e.setSession(Session{State: StateAuthenticated, AccessToken: token, Profile: profile})
	e.logger.Info("authenticated", "user", profile.Email)
	return nil
}

// exchange redeems the authorization code with the PKCE verifier. Provider
// error descriptions are surfaced verbatim when available.
func (e *Engine) exchange(ctx context.Context, code, verifier string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	token, err := e.oauthConfig().Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.ErrorDescription != "" {
			return "", fmt.Errorf("%w: %s", shared.ErrProvider, rerr.ErrorDescription)
		}
		return "", fmt.Errorf("%w: token exchange failed", shared.ErrProvider)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", shared.ErrProvider)
	}

	return token.AccessToken, nil
}

// restore attempts to resume a persisted session. The profile endpoint acts
// as the validity proxy: HTTP 200 means the token is still live.
func (e *Engine) restore(ctx context.Context) {
	token, profile, ok := e.store.Load()
	if !ok {
		e.setSession(Session{State: StateUnauthenticated})
		return
	}

	if err := e.Validate(ctx, token); err != nil {
		e.logger.Warn("persisted token failed validation", "error", err)
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated})
		return
	}

	e.setSession(Session{State: StateAuthenticated, AccessToken: token, Profile: profile})
}

// Validate checks token liveness against the profile endpoint.
func (e *Engine) Validate(ctx context.Context, token string) error {
	if token == "" {
		return shared.ErrTokenInvalid
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.ProfileURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create validation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrTokenInvalid, resp.StatusCode)
	}

	return nil
}

// fetchProfile retrieves the authenticated user's profile.
func (e *Engine) fetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.ProfileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed with status %d", resp.StatusCode)
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

// StartValidation launches the periodic re-validation loop. It runs until
// ctx is cancelled; cancel the context when the session ends so the timer is
// torn down with it. A tick that finds a cleared token is treated as
// immediately invalid.
func (e *Engine) StartValidation(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(e.cfg.ValidateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.revalidate(ctx)
			}
		}
	}()
}

func (e *Engine) revalidate(ctx context.Context) {
	session := e.Session()
	if session.State != StateAuthenticated {
		return
	}

	if err := e.Validate(ctx, session.AccessToken); err != nil {
		e.logger.Warn("session expired during periodic validation", "error", err)
		e.store.Clear()
		e.setSession(Session{State: StateUnauthenticated, Err: "your session has expired; please sign in again"})
		if e.OnExpired != nil {
			e.OnExpired()
		}
	}
}

// Logout clears all session state. Idempotent: safe to call when already
// unauthenticated.
func (e *Engine) Logout() {
	e.store.Clear()
	e.setSession(Session{State: StateUnauthenticated})
}
