package task

import (
	"strings"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
)

// StatusFilter narrows the displayed tasks by status.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
	FilterArchived  StatusFilter = "archived"
)

// NextStatusFilter cycles all -> pending -> completed -> archived -> all.
func NextStatusFilter(f StatusFilter) StatusFilter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	case FilterCompleted:
		return FilterArchived
	default:
		return FilterAll
	}
}

// Filter derives the displayed subset of tasks. Status narrows by exact
// match (FilterAll passes everything); the search text matches
// case-insensitively against the title, or against the description when
// one is present. Relative order is preserved and the input is never
// modified.
func Filter(tasks []api.Task, status StatusFilter, search string) []api.Task {
	out := make([]api.Task, 0, len(tasks))
	needle := strings.ToLower(strings.TrimSpace(search))

	for _, t := range tasks {
		if status != FilterAll && t.Status != api.TaskStatus(status) {
			continue
		}
		if needle != "" && !matchesSearch(&t, needle) {
			continue
		}
		out = append(out, t)
	}

	return out
}

func matchesSearch(t *api.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), needle)
}
