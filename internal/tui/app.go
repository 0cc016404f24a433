// Package tui provides the terminal user interface: an auth form, the
// task list, and the chat surface, all driven by the session, task and
// chat cores.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/chat"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/config"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/session"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/task"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/tui/styles"
)

// Screen represents the current screen.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenTasks
	ScreenChat
)

// authMode switches the auth form between login and register.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// chatLine is one rendered entry of the chat transcript.
type chatLine struct {
	role    string // "user", "agent" or "meta"
	content string
}

// App is the main Bubble Tea model for the application.
type App struct {
	resolver     *session.Resolver
	synchronizer *task.Synchronizer
	chatService  *chat.Service
	cfg          *config.Config
	logger       *logger.Logger

	screen Screen
	width  int
	height int

	spin spinner.Model

	// Auth form state
	mode       authMode
	authInputs []textinput.Model
	authFocus  int
	authErr    string
	authBusy   bool

	// Task list state
	cursor        int
	statusFilter  task.StatusFilter
	searching     bool
	searchInput   textinput.Model
	adding        bool
	addInput      textinput.Model
	pendingDelete bool
	statusLine    string

	// Chat state
	chatInput    textinput.Model
	chatViewport viewport.Model
	transcript   []chatLine
	chatWaiting  bool
}

// NewApp wires the TUI to the core components.
func NewApp(resolver *session.Resolver, sync *task.Synchronizer, chatService *chat.Service, cfg *config.Config, log *logger.Logger) *App {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "search"

	add := textinput.New()
	add.Placeholder = "task title"

	chatIn := textinput.New()
	chatIn.Placeholder = "ask the assistant"

	return &App{
		resolver:     resolver,
		synchronizer: sync,
		chatService:  chatService,
		cfg:          cfg,
		logger:       log,
		screen:       ScreenAuth,
		spin:         sp,
		statusFilter: task.FilterAll,
		authInputs:   []textinput.Model{email, password, confirm},
		searchInput:  search,
		addInput:     add,
		chatInput:    chatIn,
	}
}

// Init starts session resolution.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveCmd(), a.spin.Tick)
}

// Update is the top-level message dispatcher.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeChat()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionResolvedMsg:
		if msg.state == session.StateResolved {
			a.screen = ScreenTasks
			return a, a.loadCmd()
		}
		a.screen = ScreenAuth
		return a, nil

	case signedInMsg:
		a.authErr = ""
		a.authBusy = false
		a.screen = ScreenTasks
		a.resetAuthForm()
		return a, a.loadCmd()

	case authFailedMsg:
		a.authBusy = false
		a.authErr = userMessage(msg.err)
		return a, nil

	case signedOutMsg:
		a.screen = ScreenAuth
		a.transcript = nil
		a.chatService.Reset()
		return a, a.loadCmd() // discards the collection for the dead identity

	case syncChangedMsg:
		a.clampCursor()
		return a, nil

	case taskMutatedMsg:
		if msg.err != nil {
			a.statusLine = styles.Error.Render(userMessage(msg.err))
		} else {
			a.statusLine = ""
		}
		a.clampCursor()
		return a, nil

	case chatHistoryMsg:
		if len(a.transcript) == 0 {
			a.applyChatHistory(msg.messages)
		}
		return a, nil

	case chatRespondedMsg:
		return a.handleChatResponse(msg)

	case yankedMsg:
		if msg.err != nil {
			a.statusLine = styles.Error.Render("copy failed")
		} else {
			a.statusLine = styles.Status.Render("title copied")
		}
		return a, nil

	case tea.KeyMsg:
		switch a.screen {
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenTasks:
			return a.updateTasks(msg)
		case ScreenChat:
			return a.updateChat(msg)
		}
	}

	return a, nil
}

// View renders the current screen.
func (a *App) View() string {
	switch a.screen {
	case ScreenAuth:
		return styles.App.Render(a.viewAuth())
	case ScreenTasks:
		return styles.App.Render(a.viewTasks())
	case ScreenChat:
		return styles.App.Render(a.viewChat())
	default:
		return ""
	}
}

func (a *App) resetAuthForm() {
	for i := range a.authInputs {
		a.authInputs[i].SetValue("")
		a.authInputs[i].Blur()
	}
	a.authFocus = 0
	a.authInputs[0].Focus()
}

func (a *App) clampCursor() {
	n := len(a.visibleTasks())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// commands

func (a *App) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionResolvedMsg{state: a.resolver.Resolve()}
	}
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.synchronizer.Load()
		return syncChangedMsg{}
	}
}

func (a *App) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.resolver.SignIn(email, password)
		if err != nil {
			return authFailedMsg{err: err}
		}
		return signedInMsg{user: user}
	}
}

func (a *App) signUpCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.resolver.SignUp(email, password)
		if err != nil {
			return authFailedMsg{err: err}
		}
		return signedInMsg{user: user}
	}
}

func (a *App) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		a.resolver.SignOut()
		return signedOutMsg{}
	}
}
