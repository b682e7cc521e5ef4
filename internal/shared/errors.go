package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingClientID = fmt.Errorf("client_id is not configured")

	// Authentication protocol errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrStateMismatch    = fmt.Errorf("state parameter mismatch")
	ErrNoTransaction    = fmt.Errorf("no pending authorization transaction")
	ErrAccessDenied     = fmt.Errorf("access denied by user")
	ErrProvider         = fmt.Errorf("identity provider error")
	ErrProfileFetch     = fmt.Errorf("profile fetch failed")
	ErrTokenInvalid     = fmt.Errorf("access token invalid")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest           = fmt.Errorf("API request failed")
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")
	ErrSubscriptionNotFound = fmt.Errorf("subscription not found")
	ErrListNotFound         = fmt.Errorf("list not found")
	ErrListExists           = fmt.Errorf("list already exists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
