// Package auth implements the OAuth 2.0 Authorization-Code-with-PKCE flow
// for the YouTube Data API and owns all session state.
//
// # State machine
//
// The [Engine] moves Uninitialized → Initializing → one of Authenticated,
// Unauthenticated, or Error. Error is reserved for unrecoverable
// configuration problems (a missing client id); provider rejections and
// protocol violations end in Unauthenticated with a user-facing message.
//
// [Engine.Initialize] handles the three mutually exclusive startup cases:
// an error callback from the provider, a success callback carrying code and
// state, or no callback at all (restore from the [SessionStore]).
//
// # CSRF and PKCE
//
// [Engine.BeginLogin] persists a single-use transaction (random state token
// plus PKCE verifier). [Engine.HandleCallback] fails closed: a missing
// transaction or a state mismatch clears every auth artifact before any
// code is exchanged, and the transaction is deleted on first consumption so
// a replayed callback always fails.
//
// # Liveness
//
// The profile endpoint acts as the token-validity proxy (HTTP 200 means
// live). While authenticated, [Engine.StartValidation] re-checks every five
// minutes on a background ticker torn down by context cancellation.
package auth
