// Package main is the entry point for the evotodo terminal client.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbduSubhan11/Evolution-of-Todo/internal/api"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/chat"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/config"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/logger"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/refresh"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/session"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/task"
	"github.com/AbduSubhan11/Evolution-of-Todo/internal/tui"
)

const version = "0.1.0"

const helpText = `evotodo - Terminal client for the Evolution of Todo services

USAGE:
    evotodo [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --sign-out      Discard the stored session and exit

CONFIGURATION:
    Config file: ~/.config/evotodo/config.yaml

    Service URLs default to a local deployment and may be overridden
    in the config file or with EVOTODO_AUTH_URL, EVOTODO_TASK_URL and
    EVOTODO_CHAT_URL.

KEYBINDINGS:
    Navigation:
        j/k         Move down/up (vim mode)
        g/G         Go to top/bottom (vim mode)

    Task Actions:
        x / space   Complete/uncomplete task
        a           Add new task
        dd          Delete task
        y           Copy task title

    Other:
        /           Search tasks
        f           Cycle status filter
        c           Open the assistant chat
        r           Refresh
        L           Sign out
        q           Quit
`

const configTemplate = `# evotodo configuration
# Location: ~/.config/evotodo/config.yaml

services:
  # Base URLs of the backend services. Leave commented to use a local
  # deployment.
  # auth_url: "http://localhost:8001"
  # task_url: "http://localhost:8000"
  # chat_url: "http://localhost:8000"

chat:
  # How long to wait after a task-related chat message before reloading
  # the task list.
  refresh_delay: 1s

ui:
  # Enable Vim-style keybindings (default: true)
  vim_mode: true
  # Desktop notifications when the assistant changes tasks
  notifications: true

# Uncomment to write logs to a file. Levels: debug, info, warn, error.
# log_file: ~/.local/share/evotodo/evotodo.log
# log_level: debug
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		signOut     bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&signOut, "sign-out", false, "Discard the stored session and exit")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("evotodo version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	if signOut {
		if err := config.ClearCredentials(); err != nil {
			return fmt.Errorf("failed to clear stored session: %w", err)
		}
		fmt.Println("Stored session discarded.")
		return nil
	}

	return runApp()
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if _, err := config.ConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp wires the services together and starts the TUI.
func runApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.NewClient(cfg.Services.AuthURL, cfg.Services.TaskURL, cfg.Services.ChatURL)

	tokens := session.NewTokenStore(session.KeyringSlot{})
	resolver := session.NewResolver(client, tokens, log)

	bus := refresh.NewBus()
	defer bus.Close()

	repo := task.NewRepository(client)
	sync := task.NewSynchronizer(repo, resolver, bus, log)
	sync.Start()
	defer sync.Stop()

	chatService := chat.NewService(client, resolver, bus, cfg.Chat.RefreshDelay, log)

	app := tui.NewApp(resolver, sync, chatService, cfg, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Bus-triggered reloads repaint without a keypress.
	sync.SetOnChange(func() {
		p.Send(tui.SyncChanged())
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// openLogger opens the configured log sink. The TUI owns the terminal,
// so without a log file everything is discarded.
func openLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logger.New(io.Discard, cfg.LogLevel), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger.New(f, cfg.LogLevel), func() { f.Close() }, nil
}
