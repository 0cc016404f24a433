// Package chat sends free-text messages to the agent backend and, when
// a message looks like a task mutation, nudges the task synchronizer to
// reload once the server-side change has had time to land.
package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/refresh"
)

// ErrEmptyMessage is returned for blank input, before any network call.
var ErrEmptyMessage = errors.New("message cannot be empty")

// ErrNotSignedIn is returned when no identity is resolved.
var ErrNotSignedIn = errors.New("not signed in")

// DefaultRefreshDelay is how long the agent backend gets to finish its
// mutation before the refresh signal fires.
const DefaultRefreshDelay = time.Second

// taskKeywords are the verbs that suggest the message asks for a task
// mutation. Matching is a substring heuristic, deliberately loose: a
// spurious refresh is cheap, a missed one leaves the list stale.
var taskKeywords = []string{
	"add", "create", "new", "task",
	"update", "change", "modify", "edit",
	"complete", "done", "finish", "mark as done",
	"uncomplete", "reopen", "reset", "mark as pending",
	"delete", "remove", "erase", "cancel",
}

// ContainsTaskOperation reports whether the message mentions a task
// operation keyword.
func ContainsTaskOperation(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range taskKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// API is the slice of the transport client the chat flow depends on.
type API interface {
	SendChatMessage(userID, message, conversationID string) (*api.ChatResponse, error)
	ConversationHistory(userID, conversationID string) ([]api.ChatMessage, error)
}

// Session gates chat calls behind a resolved identity.
type Session interface {
	IsAuthenticated() bool
	Identity() *api.User
}

// Service drives one chat conversation for the signed-in user.
type Service struct {
	api     API
	session Session
	bus     *refresh.Bus
	logger  *logger.Logger
	delay   time.Duration

	// schedule defers a function; swapped out in tests.
	schedule func(d time.Duration, fn func())

	mu             sync.Mutex
	conversationID string
}

// NewService creates a chat service. A non-positive delay falls back to
// DefaultRefreshDelay.
func NewService(chatAPI API, sess Session, bus *refresh.Bus, delay time.Duration, log *logger.Logger) *Service {
	if delay <= 0 {
		delay = DefaultRefreshDelay
	}
	return &Service{
		api:     chatAPI,
		session: sess,
		bus:     bus,
		logger:  log,
		delay:   delay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// ConversationID returns the id of the ongoing conversation, empty
// before the first exchange.
func (s *Service) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Reset forgets the ongoing conversation.
func (s *Service) Reset() {
	s.mu.Lock()
	s.conversationID = ""
	s.mu.Unlock()
}

// Send forwards the message to the agent backend. When the message
// mentions a task operation, a refresh signal is published after the
// configured delay so the synchronizer picks up whatever the agent
// changed server-side.
func (s *Service) Send(message string) (*api.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if !s.session.IsAuthenticated() {
		return nil, ErrNotSignedIn
	}
	identity := s.session.Identity()
	if identity == nil {
		return nil, ErrNotSignedIn
	}

	resp, err := s.api.SendChatMessage(identity.ID, message, s.ConversationID())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.conversationID = resp.ConversationID
	s.mu.Unlock()

	if s.bus != nil && ContainsTaskOperation(message) {
		s.logger.Debug("scheduling task refresh after chat mutation", "delay", s.delay)
		s.schedule(s.delay, s.bus.Publish)
	}

	return resp, nil
}

// History fetches the messages of the ongoing conversation. Failures
// degrade to an empty history; the chat surface stays usable without it.
func (s *Service) History() []api.ChatMessage {
	identity := s.session.Identity()
	convID := s.ConversationID()
	if identity == nil || convID == "" {
		return nil
	}

	messages, err := s.api.ConversationHistory(identity.ID, convID)
	if err != nil {
		s.logger.Warn("failed to fetch conversation history", "error", err)
		return nil
	}
	return messages
}
