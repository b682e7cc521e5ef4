package auth

import "github.com/desertthunder/subdeck/internal/models"

// State enumerates the auth engine's lifecycle states.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAuthenticated
	StateUnauthenticated
	// StateError is reserved for unrecoverable configuration problems
	// (missing client id). Provider and protocol failures land in
	// StateUnauthenticated with Err set.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Session is the read model the engine publishes to consumers.
//
// AccessToken and Profile are set or absent together. Consumers must treat
// StateUninitialized and StateInitializing as "authenticity unknown" and
// must not branch on AccessToken while in either.
type Session struct {
	State       State
	AccessToken string
	Profile     *models.UserProfile
	Err         string
}

// Authenticated reports whether the session holds a validated token.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.AccessToken != ""
}

// Loading reports whether authenticity is still unknown.
func (s Session) Loading() bool {
	return s.State == StateUninitialized || s.State == StateInitializing
}
