// Package session establishes and restores the authenticated identity.
package session

import (
	"sync"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/config"
)

// DurableSlot is the persistence behind the token store. It is a dumb
// slot: no validation happens at this level.
type DurableSlot interface {
	Load() (config.Credentials, error)
	Save(config.Credentials) error
	Clear() error
}

// KeyringSlot is the production DurableSlot, backed by the config
// package's keyring-with-file-fallback storage.
type KeyringSlot struct{}

func (KeyringSlot) Load() (config.Credentials, error) { return config.LoadCredentials() }
func (KeyringSlot) Save(c config.Credentials) error   { return config.SaveCredentials(c) }
func (KeyringSlot) Clear() error                      { return config.ClearCredentials() }

// TokenStore holds the current bearer credential and email hint in
// memory, mirrored to a durable slot. The slot is read once at
// construction; concurrent writers from other processes are not
// coordinated (last writer wins).
type TokenStore struct {
	mu    sync.RWMutex
	creds config.Credentials
	slot  DurableSlot
}

// NewTokenStore creates a store primed from the durable slot. A slot
// that cannot be read starts the store empty rather than failing.
func NewTokenStore(slot DurableSlot) *TokenStore {
	creds, err := slot.Load()
	if err != nil {
		creds = config.Credentials{}
	}
	return &TokenStore{creds: creds, slot: slot}
}

// Get returns the current credentials. Zero credentials mean no stored
// session.
func (s *TokenStore) Get() config.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Set stores the credential and email hint, in memory and durably.
func (s *TokenStore) Set(token, emailHint string) error {
	s.mu.Lock()
	s.creds = config.Credentials{Token: token, EmailHint: emailHint}
	s.mu.Unlock()
	return s.slot.Save(config.Credentials{Token: token, EmailHint: emailHint})
}

// Clear wipes the credentials, in memory and durably.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	s.creds = config.Credentials{}
	s.mu.Unlock()
	return s.slot.Clear()
}
