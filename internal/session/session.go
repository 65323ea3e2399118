// Package session owns the authenticated admin session for the life of the
// process. It is the only writer of the token store and of the in-memory
// user state; everything else reads through it.
package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// State is the resolution state of the session.
type State int

const (
	// Resolving is the initial state, before the stored token has been
	// checked against the server. No redirect or auth decision is valid yet.
	Resolving State = iota
	// Authenticated means the server accepted a token at least once this
	// process lifetime. There is no local expiry tracking.
	Authenticated
	// Anonymous means no token, or the server rejected the one we had.
	Anonymous
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session holds the current admin identity. Construct it with New and pass
// it by reference to whatever needs it; there is no package-level instance.
type Session struct {
	client *api.Client
	tokens tokenstore.Store
	log    zerolog.Logger

	state State
	user  *api.User
}

// New creates a session in the Resolving state. Call Resolve before asking
// for State or User.
func New(client *api.Client, tokens tokenstore.Store, log zerolog.Logger) *Session {
	return &Session{
		client: client,
		tokens: tokens,
		log:    log,
		state:  Resolving,
	}
}

// Resolve settles the initial state. Without a stored token it lands on
// Anonymous without touching the network. With one, it asks the server who
// the token belongs to; any failure clears the token and lands on Anonymous.
// Only the first failure reason is logged, never retried.
func (s *Session) Resolve() error {
	_, ok, err := s.tokens.Get()
	if err != nil {
		return fmt.Errorf("failed to read token store: %w", err)
	}
	if !ok {
		s.state = Anonymous
		return nil
	}

	user, err := s.client.Me()
	if err != nil {
		s.log.Debug().Err(err).Msg("Stored token rejected, clearing it")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("Failed to clear rejected token")
		}
		s.state = Anonymous
		s.user = nil
		return nil
	}

	s.state = Authenticated
	s.user = user
	return nil
}

// Login authenticates and persists the returned token. On failure the token
// store and session state are untouched. The user is returned so the caller
// can route on the role.
func (s *Session) Login(email, password string) (*api.User, error) {
	resp, err := s.client.Login(email, password)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Set(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}

	user := resp.User
	s.state = Authenticated
	s.user = &user

	s.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("Logged in")
	return &user, nil
}

// Logout clears the token and resets to Anonymous. It never talks to the
// server and is idempotent.
func (s *Session) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.state = Anonymous
	s.user = nil
	return nil
}

// ChangePassword delegates to the server. Session state is not touched;
// the current token stays valid as far as this client knows.
func (s *Session) ChangePassword(currentPassword, newPassword string) error {
	return s.client.ChangePassword(currentPassword, newPassword)
}

// State returns the current resolution state.
func (s *Session) State() State {
	return s.state
}

// User returns the authenticated user, or nil outside Authenticated.
func (s *Session) User() *api.User {
	return s.user
}
