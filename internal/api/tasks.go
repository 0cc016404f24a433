package api

import "fmt"

// taskURL builds the per-user task collection URL.
func (c *Client) taskURL(userID string) string {
	return c.taskBaseURL + "/api/" + userID + "/tasks"
}

// ListTasks returns the user's tasks, optionally narrowed by filter.
func (c *Client) ListTasks(userID string, filter TaskFilter) ([]Task, error) {
	tasks := make([]Task, 0)
	if err := c.get(c.taskURL(userID), buildTaskQuery(filter), &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task for the user.
func (c *Client) CreateTask(userID string, draft TaskDraft) (*Task, error) {
	var task Task
	if err := c.post(c.taskURL(userID), draft, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(userID, taskID string) (*Task, error) {
	var task Task
	if err := c.get(c.taskURL(userID)+"/"+taskID, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}
	return &task, nil
}

// UpdateTask applies a partial update to an existing task.
func (c *Client) UpdateTask(userID, taskID string, patch TaskPatch) (*Task, error) {
	var task Task
	if err := c.put(c.taskURL(userID)+"/"+taskID, patch, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(userID, taskID string) error {
	if err := c.del(c.taskURL(userID) + "/" + taskID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}

// SetTaskCompletion marks a task completed or pending.
func (c *Client) SetTaskCompletion(userID, taskID string, complete bool) (*Task, error) {
	body := map[string]bool{"complete": complete}
	var task Task
	if err := c.patch(c.taskURL(userID)+"/"+taskID+"/complete", body, &task); err != nil {
		return nil, fmt.Errorf("failed to set completion of task %s: %w", taskID, err)
	}
	return &task, nil
}
