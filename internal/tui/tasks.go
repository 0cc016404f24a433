package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/task"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/tui/styles"
)

func (a *App) visibleTasks() []api.Task {
	return task.Filter(a.synchronizer.Tasks(), a.statusFilter, a.searchInput.Value())
}

func (a *App) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		return a.updateSearch(msg)
	}
	if a.adding {
		return a.updateAdd(msg)
	}

	key := msg.String()

	// dd is a two-key chord; anything else cancels the pending delete.
	if a.pendingDelete && key != "d" {
		a.pendingDelete = false
	}

	switch key {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "up":
		a.moveCursor(-1)
	case "down":
		a.moveCursor(1)
	case "k":
		if a.cfg.UI.VimMode {
			a.moveCursor(-1)
		}
	case "j":
		if a.cfg.UI.VimMode {
			a.moveCursor(1)
		}
	case "g":
		if a.cfg.UI.VimMode {
			a.cursor = 0
		}
	case "G":
		if a.cfg.UI.VimMode {
			a.cursor = len(a.visibleTasks()) - 1
			a.clampCursor()
		}

	case "x", " ":
		if t, ok := a.selectedTask(); ok {
			return a, a.toggleCmd(t.ID)
		}

	case "a":
		a.adding = true
		a.addInput.SetValue("")
		a.addInput.Focus()

	case "d":
		if !a.pendingDelete {
			a.pendingDelete = true
			break
		}
		a.pendingDelete = false
		if t, ok := a.selectedTask(); ok {
			return a, a.removeCmd(t.ID)
		}

	case "/":
		a.searching = true
		a.searchInput.Focus()

	case "esc":
		a.searchInput.SetValue("")
		a.clampCursor()

	case "f":
		a.statusFilter = task.NextStatusFilter(a.statusFilter)
		a.clampCursor()

	case "y":
		if t, ok := a.selectedTask(); ok {
			return a, yankCmd(t.Title)
		}

	case "r":
		return a, a.loadCmd()

	case "c":
		a.screen = ScreenChat
		a.chatInput.Focus()
		a.resizeChat()
		if len(a.transcript) == 0 && a.chatService.ConversationID() != "" {
			return a, a.chatHistoryCmd()
		}

	case "L":
		return a, a.signOutCmd()
	}

	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.clampCursor()
		return a, nil
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		a.clampCursor()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.clampCursor()
	return a, cmd
}

func (a *App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.adding = false
		a.addInput.Blur()
		return a, nil
	case "enter":
		title := strings.TrimSpace(a.addInput.Value())
		a.adding = false
		a.addInput.Blur()
		if title == "" {
			return a, nil
		}
		return a, a.createCmd(title)
	}

	var cmd tea.Cmd
	a.addInput, cmd = a.addInput.Update(msg)
	return a, cmd
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) selectedTask() (*api.Task, bool) {
	visible := a.visibleTasks()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return nil, false
	}
	return &visible[a.cursor], true
}

func (a *App) viewTasks() string {
	var b strings.Builder

	header := "Tasks"
	if user := a.resolver.Identity(); user != nil && user.Email != "" {
		header = fmt.Sprintf("Tasks — %s", user.Email)
	}
	b.WriteString(styles.Title.Render(header))
	b.WriteString("  ")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("[%s]", a.statusFilter)))
	if a.synchronizer.Loading() {
		b.WriteString("  " + a.spin.View())
	}
	b.WriteString("\n\n")

	visible := a.visibleTasks()
	if len(visible) == 0 {
		b.WriteString(styles.Help.Render("no tasks") + "\n")
	}
	for i, t := range visible {
		b.WriteString(a.renderTaskRow(&t, i == a.cursor))
		b.WriteString("\n")
	}

	if a.searching || a.searchInput.Value() != "" {
		b.WriteString("\n/" + a.searchInput.View() + "\n")
	}
	if a.adding {
		b.WriteString("\nnew: " + a.addInput.View() + "\n")
	}

	if err := a.synchronizer.Err(); err != nil {
		b.WriteString("\n" + styles.Error.Render(userMessage(err)) + "\n")
	}
	if a.statusLine != "" {
		b.WriteString("\n" + a.statusLine + "\n")
	}

	b.WriteString("\n" + styles.Help.Render("x: toggle • a: add • dd: delete • /: search • f: filter • y: yank • c: chat • r: reload • L: sign out • q: quit"))
	return b.String()
}

func (a *App) renderTaskRow(t *api.Task, selected bool) string {
	mark := "[ ]"
	if t.IsCompleted() {
		mark = "[x]"
	}

	line := fmt.Sprintf("%s %s", mark, t.Title)
	if t.Description != "" {
		line += styles.Help.Render(" · " + t.Description)
	}

	width := a.width - 4
	if width > 8 {
		line = runewidth.Truncate(line, width, "…")
	}

	switch {
	case selected:
		return styles.TaskSelected.Render(line)
	case t.Status == api.StatusArchived:
		return styles.TaskArchived.Render(line)
	case t.IsCompleted():
		return styles.TaskCompleted.Render(line)
	default:
		return styles.TaskItem.Render(line)
	}
}

// commands

func (a *App) toggleCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.synchronizer.Toggle(taskID)
		return taskMutatedMsg{err: err}
	}
}

func (a *App) createCmd(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.synchronizer.Create(api.TaskDraft{Title: title})
		return taskMutatedMsg{err: err}
	}
}

func (a *App) removeCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{err: a.synchronizer.Remove(taskID)}
	}
}

func yankCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return yankedMsg{err: clipboard.WriteAll(text)}
	}
}
