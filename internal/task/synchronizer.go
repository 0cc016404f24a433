package task

import (
	"errors"
	"strings"
	"sync"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/refresh"
)

// Validation errors, recovered locally without a network round-trip.
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrNotSignedIn   = errors.New("not signed in")
	ErrTaskNotCached = errors.New("task is not in the local collection")
)

// Session is the slice of the session resolver the synchronizer needs
// to gate calls behind a validated identity.
type Session interface {
	IsAuthenticated() bool
	Identity() *api.User
	Credential() string
}

// scope is the identity/credential pair a request was issued under.
// Responses arriving for a scope that no longer matches current session
// state are discarded; there is no cancellation primitive.
type scope struct {
	userID     string
	credential string
}

// Synchronizer owns the in-memory task collection and keeps it
// consistent with the remote store. The collection is a cache, never
// the source of truth: it changes only after a server round-trip
// confirms the mutation. Writes are not optimistic; pending state is
// visible through the loading flag.
//
// Two rapid toggles on one task are a read-modify-write race with
// last-response-wins semantics. That is a documented limitation of the
// data flow, not something this type tries to fix.
type Synchronizer struct {
	repo    Repository
	session Session
	bus     *refresh.Bus
	logger  *logger.Logger

	mu      sync.Mutex
	tasks   []api.Task
	loading bool
	lastErr error

	sub      <-chan struct{}
	onChange func()
}

// NewSynchronizer wires the synchronizer to its repository, session
// gate and refresh bus. Call Start to begin observing the bus.
func NewSynchronizer(repo Repository, sess Session, bus *refresh.Bus, log *logger.Logger) *Synchronizer {
	return &Synchronizer{
		repo:    repo,
		session: sess,
		bus:     bus,
		logger:  log,
	}
}

// SetOnChange installs a callback invoked after every state change.
// Used by the presentation layer to repaint; may be nil.
func (s *Synchronizer) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Start subscribes to the refresh bus. Each signal behaves exactly like
// an externally triggered Load, including the in-flight guard, so
// signals arriving mid-reload coalesce instead of queueing.
func (s *Synchronizer) Start() {
	if s.bus == nil {
		return
	}
	s.sub = s.bus.Subscribe()
	ch := s.sub
	go func() {
		for range ch {
			// Collapse a burst that accumulated before this reload
			// starts. A signal arriving once the fetch is underway may
			// describe state the fetch misses, so it stays queued and
			// gets its own pass.
			select {
			case <-ch:
			default:
			}
			s.logger.Debug("refresh requested via bus")
			_ = s.Load()
		}
	}()
}

// Stop detaches from the refresh bus.
func (s *Synchronizer) Stop() {
	if s.bus != nil && s.sub != nil {
		s.bus.Unsubscribe(s.sub)
		s.sub = nil
	}
}

// Tasks returns a snapshot of the local collection.
func (s *Synchronizer) Tasks() []api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loading reports whether a request is in flight.
func (s *Synchronizer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the latest stored error, or nil. Errors are kept for
// display; nothing is retried automatically.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// currentScope returns the identity/credential pair to issue a request
// under, or false when there is no valid resolved identity.
func (s *Synchronizer) currentScope() (scope, bool) {
	if !s.session.IsAuthenticated() {
		return scope{}, false
	}
	identity := s.session.Identity()
	if identity == nil || validateUserID(identity.ID) != nil {
		return scope{}, false
	}
	return scope{userID: identity.ID, credential: s.session.Credential()}, true
}

// scopeStillCurrent reports whether a response issued under sc may be
// applied to the collection.
func (s *Synchronizer) scopeStillCurrent(sc scope) bool {
	current, ok := s.currentScope()
	return ok && current == sc
}

// Load replaces the entire local collection with the remote state. It
// is a no-op while another load is in flight or when no valid identity
// is resolved; in the latter case the collection is discarded, since
// every cached task must belong to the current identity. On failure the
// collection is reset to empty rather than showing stale data.
func (s *Synchronizer) Load() error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	sc, ok := s.currentScope()
	if !ok {
		s.tasks = nil
		s.lastErr = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()

	tasks, err := s.repo.List(sc.userID, api.TaskFilter{})

	s.mu.Lock()
	s.loading = false
	if !s.scopeStillCurrent(sc) {
		// Identity changed while the request was in flight; the result
		// belongs to a session that no longer exists.
		s.tasks = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}
	if err != nil {
		s.tasks = []api.Task{}
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		s.logger.Error("failed to load tasks", "error", err)
		return err
	}
	s.tasks = tasks
	s.mu.Unlock()
	s.notify()
	return nil
}

// Create sends a draft to the remote store and, once confirmed,
// inserts the server-returned task at the front of the collection.
func (s *Synchronizer) Create(draft api.TaskDraft) (*api.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrEmptyTitle
	}
	sc, ok := s.currentScope()
	if !ok {
		return nil, ErrNotSignedIn
	}

	s.setLoading(true)
	created, err := s.repo.Create(sc.userID, draft)
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	if s.scopeStillCurrent(sc) {
		s.tasks = append([]api.Task{*created}, s.tasks...)
	}
	s.mu.Unlock()
	s.notify()
	return created, nil
}

// Update applies a patch remotely and replaces the cached entry with
// the server-returned task.
func (s *Synchronizer) Update(taskID string, patch api.TaskPatch) (*api.Task, error) {
	sc, ok := s.currentScope()
	if !ok {
		return nil, ErrNotSignedIn
	}

	s.setLoading(true)
	updated, err := s.repo.Update(sc.userID, taskID, patch)
	return s.finishMutation(sc, taskID, updated, err)
}

// Remove deletes the task remotely and drops it from the collection.
func (s *Synchronizer) Remove(taskID string) error {
	sc, ok := s.currentScope()
	if !ok {
		return ErrNotSignedIn
	}

	s.setLoading(true)
	err := s.repo.Remove(sc.userID, taskID)
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		// A task the server no longer knows should not linger locally.
		if apiErr, isAPI := api.AsAPIError(err); isAPI && apiErr.IsNotFound() && s.scopeStillCurrent(sc) {
			s.dropLocked(taskID)
		}
		s.mu.Unlock()
		s.notify()
		return err
	}
	if s.scopeStillCurrent(sc) {
		s.dropLocked(taskID)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Toggle flips completion based on the currently cached status. Two
// rapid toggles without awaiting the first response race; the last
// response wins.
func (s *Synchronizer) Toggle(taskID string) (*api.Task, error) {
	sc, ok := s.currentScope()
	if !ok {
		return nil, ErrNotSignedIn
	}

	s.mu.Lock()
	cached, found := s.findLocked(taskID)
	if !found {
		s.mu.Unlock()
		return nil, ErrTaskNotCached
	}
	complete := !cached.IsCompleted()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	updated, err := s.repo.SetCompletion(sc.userID, taskID, complete)
	return s.finishMutation(sc, taskID, updated, err)
}

// finishMutation applies the outcome of an update-shaped round-trip.
func (s *Synchronizer) finishMutation(sc scope, taskID string, updated *api.Task, err error) (*api.Task, error) {
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		if apiErr, isAPI := api.AsAPIError(err); isAPI && apiErr.IsNotFound() && s.scopeStillCurrent(sc) {
			s.dropLocked(taskID)
		}
		s.mu.Unlock()
		s.notify()
		return nil, err
	}
	if s.scopeStillCurrent(sc) {
		s.replaceLocked(taskID, *updated)
	}
	s.mu.Unlock()
	s.notify()
	return updated, nil
}

func (s *Synchronizer) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *Synchronizer) findLocked(taskID string) (*api.Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return &s.tasks[i], true
		}
	}
	return nil, false
}

func (s *Synchronizer) replaceLocked(taskID string, t api.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i] = t
			return
		}
	}
}

func (s *Synchronizer) dropLocked(taskID string) {
	out := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != taskID {
			out = append(out, t)
		}
	}
	s.tasks = out
}

func (s *Synchronizer) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
