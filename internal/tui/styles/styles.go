// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	// Help is for the key hint line at the bottom
	Help = lipgloss.NewStyle().
		Foreground(Subtle)

	// Error is for error banners
	Error = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	// Status is for transient status lines
	Status = lipgloss.NewStyle().
		Foreground(SuccessColor)
)

// Task styles
var (
	// TaskItem is the base style for a task row
	TaskItem = lipgloss.NewStyle().
			PaddingLeft(2)

	// TaskSelected is the style for the row under the cursor
	TaskSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true)

	// TaskCompleted is the style for completed tasks
	TaskCompleted = lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true).
			Strikethrough(true)

	// TaskArchived is the style for archived tasks
	TaskArchived = lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true)
)

// Chat styles
var (
	// ChatUser is for the user's own messages
	ChatUser = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	// ChatAgent is for agent replies
	ChatAgent = lipgloss.NewStyle()

	// ChatMeta is for tool-call annotations
	ChatMeta = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true)
)
