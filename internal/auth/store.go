package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/subdeck/internal/models"
)

// Storage keys. File names mirror the browser-era storage scheme so a state
// directory is self-describing.
const (
	tokenKey    = "youtube_access_token"
	profileKey  = "youtube_user_info"
	stateKey    = "oauth_state"
	verifierKey = "oauth_code_verifier"
)

// legacyKeys are files written by the pre-PKCE (implicit flow) releases.
// Clear removes them so stale credentials cannot resurrect a session.
var legacyKeys = []string{"token.json", "profile.json"}

// SessionStore persists the access token, cached user profile, and transient
// authorization-transaction artifacts under a state directory.
//
// Each value is written as a whole file, never field-by-field, so a reader
// can never observe a torn state.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a SessionStore rooted at dir, creating it with
// owner-only permissions if needed.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *SessionStore) Dir() string {
	return s.dir
}

func (s *SessionStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *SessionStore) write(key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) read(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *SessionStore) remove(keys ...string) {
	for _, key := range keys {
		os.Remove(s.path(key))
	}
}

// Save persists the access token and user profile together.
func (s *SessionStore) Save(token string, profile *models.UserProfile) error {
	if token == "" || profile == nil {
		return fmt.Errorf("token and profile must both be present")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := s.write(profileKey, data); err != nil {
		return err
	}
	return s.write(tokenKey, []byte(token))
}

// Load restores a persisted session. Returns ok=false when either half is
// missing or unreadable; a half-present session is cleared rather than
// surfaced, keeping token and profile set or absent together.
func (s *SessionStore) Load() (string, *models.UserProfile, bool) {
	tokenData, tokenOK := s.read(tokenKey)
	profileData, profileOK := s.read(profileKey)

	if !tokenOK || !profileOK || len(tokenData) == 0 {
		s.remove(tokenKey, profileKey)
		return "", nil, false
	}

	var profile models.UserProfile
	if err := json.Unmarshal(profileData, &profile); err != nil {
		s.remove(tokenKey, profileKey)
		return "", nil, false
	}

	return string(tokenData), &profile, true
}

// Clear removes the persisted session, any pending transaction, and any
// files left behind by the legacy storage scheme. Safe to call repeatedly.
func (s *SessionStore) Clear() {
	s.remove(tokenKey, profileKey)
	s.ClearTransaction()
	s.remove(legacyKeys...)
}

// SaveTransaction persists the state token and PKCE verifier for the round
// trip to the identity provider.
func (s *SessionStore) SaveTransaction(state, verifier string) error {
	if state == "" || verifier == "" {
		return fmt.Errorf("state and verifier must both be present")
	}
	if err := s.write(verifierKey, []byte(verifier)); err != nil {
		return err
	}
	return s.write(stateKey, []byte(state))
}

// LoadTransaction returns the pending transaction, or ok=false when no
// complete transaction exists.
func (s *SessionStore) LoadTransaction() (string, string, bool) {
	stateData, stateOK := s.read(stateKey)
	verifierData, verifierOK := s.read(verifierKey)

	if !stateOK || !verifierOK || len(stateData) == 0 || len(verifierData) == 0 {
		return "", "", false
	}

	return string(stateData), string(verifierData), true
}

// ClearTransaction deletes the pending transaction. Transactions are
// single-use; callers clear immediately on consumption, success or failure.
func (s *SessionStore) ClearTransaction() {
	s.remove(stateKey, verifierKey)
}
