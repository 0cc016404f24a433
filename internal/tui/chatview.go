package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/tui/styles"
)

func (a *App) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.screen = ScreenTasks
		a.chatInput.Blur()
		return a, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		a.chatViewport, cmd = a.chatViewport.Update(msg)
		return a, cmd

	case "enter":
		if a.chatWaiting {
			return a, nil
		}
		message := strings.TrimSpace(a.chatInput.Value())
		if message == "" {
			return a, nil
		}
		a.chatInput.SetValue("")
		a.chatWaiting = true
		a.transcript = append(a.transcript, chatLine{role: "user", content: message})
		a.refreshTranscript()
		return a, a.chatSendCmd(message)
	}

	var cmd tea.Cmd
	a.chatInput, cmd = a.chatInput.Update(msg)
	return a, cmd
}

func (a *App) handleChatResponse(msg chatRespondedMsg) (tea.Model, tea.Cmd) {
	a.chatWaiting = false

	if msg.err != nil {
		a.transcript = append(a.transcript, chatLine{role: "meta", content: userMessage(msg.err)})
		a.refreshTranscript()
		return a, nil
	}

	a.transcript = append(a.transcript, chatLine{role: "agent", content: msg.resp.Response})
	var cmd tea.Cmd
	if n := len(msg.resp.ToolCalls); n > 0 {
		a.transcript = append(a.transcript, chatLine{
			role:    "meta",
			content: fmt.Sprintf("%d task change(s) applied", n),
		})
		if a.cfg.UI.Notifications {
			cmd = notifyCmd(fmt.Sprintf("The assistant changed %d task(s)", n))
		}
	}
	a.refreshTranscript()
	return a, cmd
}

func (a *App) chatHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		return chatHistoryMsg{messages: a.chatService.History()}
	}
}

func (a *App) applyChatHistory(messages []api.ChatMessage) {
	a.transcript = a.transcript[:0]
	for _, m := range messages {
		role := "agent"
		if m.Role == "user" {
			role = "user"
		}
		a.transcript = append(a.transcript, chatLine{role: role, content: m.Content})
	}
	a.refreshTranscript()
}

func (a *App) chatSendCmd(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.chatService.Send(message)
		return chatRespondedMsg{resp: resp, err: err}
	}
}

func notifyCmd(body string) tea.Cmd {
	return func() tea.Msg {
		_ = beeep.Notify("evotodo", body, "")
		return nil
	}
}

func (a *App) resizeChat() {
	w := a.width - 4
	h := a.height - 8
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	a.chatViewport.Width = w
	a.chatViewport.Height = h
	a.refreshTranscript()
}

func (a *App) refreshTranscript() {
	var b strings.Builder
	for _, line := range a.transcript {
		switch line.role {
		case "user":
			b.WriteString(styles.ChatUser.Render("you: ") + line.content)
		case "agent":
			b.WriteString(styles.ChatAgent.Render("agent: ") + line.content)
		default:
			b.WriteString(styles.ChatMeta.Render(line.content))
		}
		b.WriteString("\n")
	}
	a.chatViewport.SetContent(b.String())
	a.chatViewport.GotoBottom()
}

func (a *App) viewChat() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Assistant"))
	if a.chatWaiting {
		b.WriteString("  " + a.spin.View())
	}
	b.WriteString("\n\n")

	b.WriteString(a.chatViewport.View())
	b.WriteString("\n\n")
	b.WriteString(a.chatInput.View())
	b.WriteString("\n" + styles.Help.Render("enter: send • esc: back to tasks • ctrl+c: quit"))

	return b.String()
}
