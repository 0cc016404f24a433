package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/session"
)

// SyncChanged builds the message external callers (the synchronizer's
// change hook) send into the program to trigger a repaint.
func SyncChanged() tea.Msg {
	return syncChangedMsg{}
}

// sessionResolvedMsg is emitted when the resolver finishes a pass over
// its fallback chain.
type sessionResolvedMsg struct {
	state session.State
}

// signedInMsg is emitted after a successful sign-in or sign-up.
type signedInMsg struct {
	user *api.User
}

// authFailedMsg carries a sign-in/sign-up failure for display.
type authFailedMsg struct {
	err error
}

// signedOutMsg is emitted once sign-out has completed locally.
type signedOutMsg struct{}

// syncChangedMsg is emitted whenever the synchronizer's state changed,
// including changes triggered by the refresh bus rather than by a key.
type syncChangedMsg struct{}

// taskMutatedMsg reports the outcome of a create/update/toggle/remove.
type taskMutatedMsg struct {
	err error
}

// chatHistoryMsg carries a previously stored conversation transcript.
type chatHistoryMsg struct {
	messages []api.ChatMessage
}

// chatRespondedMsg carries the agent's reply.
type chatRespondedMsg struct {
	resp *api.ChatResponse
	err  error
}

// yankedMsg confirms the selected task title went to the clipboard.
type yankedMsg struct {
	err error
}
