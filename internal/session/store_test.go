package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/config"
)

func TestTokenStorePrimedFromSlot(t *testing.T) {
	slot := &memorySlot{creds: config.Credentials{Token: "tok", EmailHint: "a@b.com"}}
	s := NewTokenStore(slot)

	assert.Equal(t, "tok", s.Get().Token)
	assert.Equal(t, "a@b.com", s.Get().EmailHint)
}

func TestTokenStoreSetPersists(t *testing.T) {
	slot := &memorySlot{}
	s := NewTokenStore(slot)

	assert.NoError(t, s.Set("tok", "a@b.com"))
	assert.Equal(t, "tok", slot.creds.Token)
	assert.Equal(t, "a@b.com", slot.creds.EmailHint)
}

func TestTokenStoreSetKeepsMemoryOnSaveError(t *testing.T) {
	slot := &memorySlot{saveErr: errors.New("keyring unavailable")}
	s := NewTokenStore(slot)

	err := s.Set("tok", "a@b.com")
	assert.Error(t, err)
	// In-memory value wins for this process; durability is best effort.
	assert.Equal(t, "tok", s.Get().Token)
}

func TestTokenStoreClear(t *testing.T) {
	slot := &memorySlot{creds: config.Credentials{Token: "tok", EmailHint: "a@b.com"}}
	s := NewTokenStore(slot)

	assert.NoError(t, s.Clear())
	assert.Empty(t, s.Get().Token)
	assert.Empty(t, slot.creds.Token)
}
