package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/chat"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/session"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/task"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/tui/styles"
)

// userMessage turns an error into a line safe to show in the UI.
// Local validation errors carry their own wording; everything else is
// bucketed by the API error helpers.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrEmptyEmail),
		errors.Is(err, session.ErrEmptyPassword),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, chat.ErrEmptyMessage):
		return err.Error()
	default:
		return api.UserMessage(err)
	}
}

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.authBusy {
		return a, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab", "down":
		a.focusAuthField(a.authFocus + 1)
		return a, nil

	case "shift+tab", "up":
		a.focusAuthField(a.authFocus - 1)
		return a, nil

	case "ctrl+r":
		if a.mode == modeLogin {
			a.mode = modeRegister
		} else {
			a.mode = modeLogin
		}
		a.authErr = ""
		a.focusAuthField(0)
		return a, nil

	case "enter":
		return a.submitAuth()
	}

	var cmd tea.Cmd
	a.authInputs[a.authFocus], cmd = a.authInputs[a.authFocus].Update(msg)
	return a, cmd
}

func (a *App) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(a.authInputs[0].Value())
	password := a.authInputs[1].Value()

	if a.mode == modeRegister {
		if err := session.ValidatePasswords(password, a.authInputs[2].Value()); err != nil {
			a.authErr = userMessage(err)
			return a, nil
		}
		a.authBusy = true
		a.authErr = ""
		return a, a.signUpCmd(email, password)
	}

	a.authBusy = true
	a.authErr = ""
	return a, a.signInCmd(email, password)
}

func (a *App) focusAuthField(idx int) {
	fields := a.visibleAuthFields()
	if idx < 0 {
		idx = fields - 1
	}
	if idx >= fields {
		idx = 0
	}
	for i := range a.authInputs {
		a.authInputs[i].Blur()
	}
	a.authFocus = idx
	a.authInputs[idx].Focus()
}

func (a *App) visibleAuthFields() int {
	if a.mode == modeRegister {
		return 3
	}
	return 2
}

func (a *App) viewAuth() string {
	var b strings.Builder

	title := "Sign in"
	hint := "enter: sign in • ctrl+r: switch to register • ctrl+c: quit"
	if a.mode == modeRegister {
		title = "Create account"
		hint = "enter: register • ctrl+r: switch to sign in • ctrl+c: quit"
	}

	b.WriteString(styles.Title.Render("evotodo"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i := 0; i < a.visibleAuthFields(); i++ {
		b.WriteString(a.authInputs[i].View())
		b.WriteString("\n")
	}

	if a.authBusy {
		b.WriteString("\n" + a.spin.View() + " authenticating...\n")
	}
	if a.authErr != "" {
		b.WriteString("\n" + styles.Error.Render(a.authErr) + "\n")
	}

	if stored := a.storedEmailHint(); stored != "" && a.mode == modeLogin {
		b.WriteString("\n" + styles.Help.Render(fmt.Sprintf("last signed in as %s", stored)) + "\n")
	}

	b.WriteString("\n" + styles.Help.Render(hint))
	return b.String()
}

func (a *App) storedEmailHint() string {
	return a.resolver.StoredEmailHint()
}
