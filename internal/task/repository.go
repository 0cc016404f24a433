// Package task keeps the local task collection consistent with the
// remote store.
package task

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
)

// ErrInvalidUserID is returned when a call is refused because the user
// id does not look like a UUID. Requests scoped to a transient
// email-like placeholder must never reach the wire.
var ErrInvalidUserID = errors.New("user id is not a valid UUID")

// Repository is the typed CRUD facade over the remote task store.
type Repository interface {
	List(userID string, filter api.TaskFilter) ([]api.Task, error)
	Create(userID string, draft api.TaskDraft) (*api.Task, error)
	Update(userID, taskID string, patch api.TaskPatch) (*api.Task, error)
	Remove(userID, taskID string) error
	SetCompletion(userID, taskID string, complete bool) (*api.Task, error)
}

// apiRepository backs Repository with the transport client.
type apiRepository struct {
	client *api.Client
}

// NewRepository creates the production repository.
func NewRepository(client *api.Client) Repository {
	return &apiRepository{client: client}
}

func validateUserID(userID string) error {
	if uuid.Validate(userID) != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}
	return nil
}

func (r *apiRepository) List(userID string, filter api.TaskFilter) ([]api.Task, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return r.client.ListTasks(userID, filter)
}

func (r *apiRepository) Create(userID string, draft api.TaskDraft) (*api.Task, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return r.client.CreateTask(userID, draft)
}

func (r *apiRepository) Update(userID, taskID string, patch api.TaskPatch) (*api.Task, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return r.client.UpdateTask(userID, taskID, patch)
}

func (r *apiRepository) Remove(userID, taskID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	return r.client.DeleteTask(userID, taskID)
}

func (r *apiRepository) SetCompletion(userID, taskID string, complete bool) (*api.Task, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return r.client.SetTaskCompletion(userID, taskID, complete)
}
