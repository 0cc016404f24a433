package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
)

func sampleTasks() []api.Task {
	return []api.Task{
		{ID: "1", Title: "Buy milk", Status: api.StatusPending},
		{ID: "2", Title: "Walk dog", Description: "around the park", Status: api.StatusCompleted},
		{ID: "3", Title: "Old report", Status: api.StatusArchived},
		{ID: "4", Title: "Call mom", Description: "about the MILK delivery", Status: api.StatusPending},
	}
}

func TestFilterAllPassesEverything(t *testing.T) {
	tasks := sampleTasks()
	out := Filter(tasks, FilterAll, "")
	assert.Equal(t, tasks, out)
}

func TestFilterByStatus(t *testing.T) {
	tests := []struct {
		status  StatusFilter
		wantIDs []string
	}{
		{FilterPending, []string{"1", "4"}},
		{FilterCompleted, []string{"2"}},
		{FilterArchived, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			out := Filter(sampleTasks(), tt.status, "")
			ids := make([]string, 0, len(out))
			for _, task := range out {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	out := Filter(sampleTasks(), FilterAll, "MiLk")

	// Matches the title of task 1 and the description of task 4, in
	// their original relative order.
	assert.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "4", out[1].ID)
}

func TestFilterSearchIgnoresEmptyDescription(t *testing.T) {
	tasks := []api.Task{{ID: "1", Title: "Chores", Status: api.StatusPending}}
	out := Filter(tasks, FilterAll, "milk")
	assert.Empty(t, out)
}

func TestFilterCombinesStatusAndSearch(t *testing.T) {
	out := Filter(sampleTasks(), FilterPending, "milk")
	assert.Len(t, out, 2)

	out = Filter(sampleTasks(), FilterCompleted, "milk")
	assert.Empty(t, out)
}

func TestFilterOutputIsSubsetPreservingOrder(t *testing.T) {
	tasks := sampleTasks()
	out := Filter(tasks, FilterPending, "")

	// Every output element appears in the input, and output order
	// follows input order.
	last := -1
	for _, got := range out {
		idx := -1
		for i, in := range tasks {
			if in.ID == got.ID {
				idx = i
				break
			}
		}
		assert.GreaterOrEqual(t, idx, 0, "output not a subset of input")
		assert.Greater(t, idx, last, "relative order not preserved")
		last = idx
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	Filter(tasks, FilterCompleted, "dog")
	assert.Equal(t, sampleTasks(), tasks)
}

func TestNextStatusFilter(t *testing.T) {
	assert.Equal(t, FilterPending, NextStatusFilter(FilterAll))
	assert.Equal(t, FilterCompleted, NextStatusFilter(FilterPending))
	assert.Equal(t, FilterArchived, NextStatusFilter(FilterCompleted))
	assert.Equal(t, FilterAll, NextStatusFilter(FilterArchived))
}
