package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
)

// State is the resolver's lifecycle state.
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateResolved
	StateAnonymous
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Validation errors, recovered locally and never sent over the wire.
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidatePasswords checks a password/confirmation pair before sign-up.
func ValidatePasswords(password, confirm string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// AuthAPI is the slice of the transport client the resolver depends on.
type AuthAPI interface {
	Register(email, password string) (*api.AuthResponse, error)
	Login(email, password string) (*api.AuthResponse, error)
	Logout() error
	Session() (*api.User, error)
	VerifySession(token string) (*api.User, error)
	SetToken(token string)
	ClearToken()
}

// Resolver owns the current Identity. It determines who the user is
// through an ordered fallback chain: a live server-side session first,
// then a stored credential verified against the server. The identity id
// always comes from a server response; the stored email hint is display
// material only.
type Resolver struct {
	auth   AuthAPI
	tokens *TokenStore
	logger *logger.Logger

	mu       sync.RWMutex
	state    State
	identity *api.User
}

// NewResolver creates a resolver in the unresolved state.
func NewResolver(auth AuthAPI, tokens *TokenStore, log *logger.Logger) *Resolver {
	return &Resolver{
		auth:   auth,
		tokens: tokens,
		logger: log,
		state:  StateUnresolved,
	}
}

// State returns the current lifecycle state.
func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Identity returns the resolved user, or nil when anonymous.
func (r *Resolver) Identity() *api.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.identity
}

// IsAuthenticated reports whether an identity is currently resolved.
func (r *Resolver) IsAuthenticated() bool {
	return r.State() == StateResolved
}

// Credential returns the bearer token backing the current session.
func (r *Resolver) Credential() string {
	return r.tokens.Get().Token
}

// StoredEmailHint returns the email remembered from the last sign-in,
// if any. It is a display hint only, never an identity.
func (r *Resolver) StoredEmailHint() string {
	return r.tokens.Get().EmailHint
}

// Resolve runs the fallback chain and returns the terminal state.
// Absence of identity is a normal outcome, not an error: Resolve never
// fails, it lands on StateAnonymous.
func (r *Resolver) Resolve() State {
	r.setState(StateResolving)

	// Canonical path: the auth service still has a live session.
	if user, err := r.auth.Session(); err == nil {
		r.logger.Debug("session resolved from live server session", "user_id", user.ID)
		return r.adopt(user)
	}

	// Degraded path: verify the stored credential against the server.
	// The server-returned id is adopted, never the email hint; task
	// ownership is keyed by id and the hint is not an identifier.
	creds := r.tokens.Get()
	if creds.Token != "" && creds.EmailHint != "" {
		user, err := r.auth.VerifySession(creds.Token)
		if err == nil {
			r.auth.SetToken(creds.Token)
			r.logger.Debug("session restored from stored credential", "user_id", user.ID)
			return r.adopt(user)
		}

		if apiErr, ok := api.AsAPIError(err); ok && apiErr.IsAuthError() {
			r.logger.Info("stored credential rejected, clearing")
			if clearErr := r.tokens.Clear(); clearErr != nil {
				r.logger.Error("failed to clear token store", "error", clearErr)
			}
		} else {
			// Transient failure: keep the stored credential for the
			// next attempt, but this resolve is still anonymous.
			r.logger.Warn("session verification unavailable", "error", err)
		}
	}

	return r.abandon()
}

// SignIn authenticates with the auth service, persists the credential,
// then re-runs the fallback chain so the Identity is the canonical
// server-confirmed one rather than the locally echoed login payload.
func (r *Resolver) SignIn(email, password string) (*api.User, error) {
	if err := validateCredentialsInput(email, password); err != nil {
		return nil, err
	}

	resp, err := r.auth.Login(email, password)
	if err != nil {
		return nil, err
	}

	return r.adoptAuthResponse(resp, email)
}

// SignUp registers a new account and resolves it like SignIn.
func (r *Resolver) SignUp(email, password string) (*api.User, error) {
	if err := validateCredentialsInput(email, password); err != nil {
		return nil, err
	}

	resp, err := r.auth.Register(email, password)
	if err != nil {
		return nil, err
	}

	return r.adoptAuthResponse(resp, email)
}

func (r *Resolver) adoptAuthResponse(resp *api.AuthResponse, email string) (*api.User, error) {
	hint := resp.User.Email
	if hint == "" {
		hint = email
	}
	if err := r.tokens.Set(resp.Token, hint); err != nil {
		r.logger.Warn("failed to persist credential", "error", err)
	}
	r.auth.SetToken(resp.Token)

	if state := r.Resolve(); state != StateResolved {
		return nil, fmt.Errorf("authenticated but failed to resolve session")
	}
	return r.Identity(), nil
}

// SignOut ends the server-side session and unconditionally clears local
// state. A failing logout call still signs the user out locally.
func (r *Resolver) SignOut() {
	if err := r.auth.Logout(); err != nil {
		r.logger.Warn("logout request failed", "error", err)
	}

	if err := r.tokens.Clear(); err != nil {
		r.logger.Error("failed to clear token store", "error", err)
	}
	r.auth.ClearToken()
	r.abandon()
}

func validateCredentialsInput(email, password string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (r *Resolver) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// adopt replaces the identity wholesale and enters StateResolved.
func (r *Resolver) adopt(user *api.User) State {
	r.mu.Lock()
	r.identity = user
	r.state = StateResolved
	r.mu.Unlock()
	return StateResolved
}

// abandon drops the identity wholesale and enters StateAnonymous.
func (r *Resolver) abandon() State {
	r.mu.Lock()
	r.identity = nil
	r.state = StateAnonymous
	r.mu.Unlock()
	return StateAnonymous
}
