// Package tui provides the terminal user interface for prefedit.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/prefedit/internal/config"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/logging"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/dtg01100/prefedit/internal/tui/components"
	"github.com/dtg01100/prefedit/internal/tui/screens"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Screen represents a TUI screen in the application.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenSettings
	ScreenHelp
)

// String returns the string representation of a screen.
func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "Main Menu"
	case ScreenSettings:
		return "Settings"
	case ScreenHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ScreenChangeMsg is sent when the screen should change.
type ScreenChangeMsg struct {
	Screen Screen
}

// Services are the long-lived dependencies the screens share.
type Services struct {
	Config *config.Config
	Store  store.Store
	Schema *models.Schema
	Logger *slog.Logger

	closers []io.Closer
}

// Close releases the store and the log file.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// loadServices opens everything the app needs. It is injectable for
// testing purposes.
var loadServices = func() (*Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open log file")
	}
	svc := &Services{Config: cfg, Logger: logger, closers: []io.Closer{logFile}}

	schema, err := models.LoadSchema(cfg.Schema.Path)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.Schema = schema

	values, err := store.OpenBolt(cfg.Store.Path)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	svc.Store = values
	svc.closers = append(svc.closers, values)

	logger.Info("services ready", "store", cfg.Store.Path, "pages", len(schema.Pages))
	return svc, nil
}

// AppInitError is sent when app initialization fails.
type AppInitError struct {
	Err error
}

// AppInitDone is sent when app initialization is complete.
type AppInitDone struct {
	Services *Services
}

// App is the main TUI application model.
type App struct {
	currentScreen  Screen
	previousScreen Screen
	width          int
	height         int
	showHelp       bool
	initError      error

	// Help screen scroll state
	helpScrollY    int
	helpContentLen int

	// Screen models
	mainMenu *screens.MainMenuScreen
	settings *screens.SettingsScreen

	services *Services
	// bundle holds edit sessions across suspend and resume.
	bundle *session.Bundle
}

// NewApp creates a new TUI application.
func NewApp() *App {
	return &App{
		currentScreen:  ScreenMain,
		previousScreen: ScreenMain,
		mainMenu:       screens.NewMainMenuScreen(),
		bundle:         session.NewBundle(),
	}
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.mainMenu.Init(),
		initializeServices,
	)
}

func initializeServices() tea.Msg {
	svc, err := loadServices()
	if err != nil {
		return AppInitError{Err: err}
	}
	return AppInitDone{Services: svc}
}

// editing reports whether a form owns the keyboard.
func (a *App) editing() bool {
	return a.currentScreen == ScreenSettings && a.settings != nil && a.settings.Editing()
}

// Update handles application updates.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.editing() {
			if model, cmd, handled := a.handleGlobalKey(msg); handled {
				return model, cmd
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(a.width, a.height)
		if a.settings != nil {
			a.settings.SetSize(a.width, a.height)
		}

	case ScreenChangeMsg:
		a.currentScreen = msg.Screen
		a.showHelp = false
		return a, nil

	case AppInitError:
		a.initError = msg.Err

	case AppInitDone:
		a.services = msg.Services
		a.mainMenu.SetPages(msg.Services.Schema.Pages)
	}

	switch a.currentScreen {
	case ScreenMain:
		model, cmd := a.mainMenu.Update(msg)
		if m, ok := model.(*screens.MainMenuScreen); ok {
			a.mainMenu = m
		}
		cmds = append(cmds, cmd)

		if a.mainMenu.ShouldNavigate() {
			target := a.mainMenu.GetNavigationTarget()
			page := a.mainMenu.SelectedPage()
			a.mainMenu.ResetNavigation()
			switch target {
			case screens.TargetPage:
				cmds = append(cmds, a.openPage(page))
			case screens.TargetQuit:
				return a, tea.Quit
			}
		}

	case ScreenSettings:
		if a.settings == nil {
			a.currentScreen = ScreenMain
			break
		}
		model, cmd := a.settings.Update(msg)
		if m, ok := model.(*screens.SettingsScreen); ok {
			a.settings = m
		}
		cmds = append(cmds, cmd)

		if a.settings.ShouldGoBack() {
			a.settings.ResetGoBack()
			a.closeSettings()
		}
	}

	return a, tea.Batch(cmds...)
}

// handleGlobalKey applies the app-wide keybindings.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+z":
		// The settings screen saves its sessions before suspending.
		if a.currentScreen != ScreenSettings {
			return a, tea.Suspend, true
		}
	case "up", "k":
		if a.showHelp {
			if a.helpScrollY > 0 {
				a.helpScrollY--
			}
			return a, nil, true
		}
	case "down", "j":
		if a.showHelp {
			maxScroll := a.helpContentLen - (a.height - 6)
			if maxScroll > 0 && a.helpScrollY < maxScroll {
				a.helpScrollY++
			}
			return a, nil, true
		}
	case "q":
		// Q quits from main menu, goes back from other screens
		switch a.currentScreen {
		case ScreenMain:
			return a, tea.Quit, true
		case ScreenHelp:
			a.closeHelp()
		default:
			a.closeSettings()
		}
		return a, nil, true
	case "esc":
		if a.showHelp {
			a.closeHelp()
			return a, nil, true
		}
		if a.currentScreen == ScreenSettings {
			a.closeSettings()
			return a, nil, true
		}
	case "?":
		if !a.showHelp {
			a.previousScreen = a.currentScreen
			a.currentScreen = ScreenHelp
			a.showHelp = true
			a.helpScrollY = 0
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) closeHelp() {
	a.currentScreen = a.previousScreen
	a.showHelp = false
}

// openPage shows the settings screen for the page at index.
func (a *App) openPage(index int) tea.Cmd {
	if a.services == nil || index < 0 || index >= len(a.services.Schema.Pages) {
		return nil
	}
	if a.settings != nil {
		a.settings.Close()
	}

	a.settings = screens.NewSettingsScreen(
		a.services.Schema.Pages[index],
		a.services.Schema,
		a.services.Store,
		a.bundle,
		a.services.Logger,
	)
	a.settings.SetSize(a.width, a.height)
	a.currentScreen = ScreenSettings
	return a.settings.Init()
}

func (a *App) closeSettings() {
	if a.settings != nil {
		a.settings.Close()
		a.settings = nil
	}
	a.currentScreen = ScreenMain
}

// Close releases the services. It is safe to call more than once.
func (a *App) Close() error {
	a.closeSettings()
	if a.services == nil {
		return nil
	}
	return a.services.Close()
}

// View renders the application.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.initError != nil {
		return a.renderInitError()
	}

	headerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - statusHeight

	header := a.renderHeader()

	var content string
	switch a.currentScreen {
	case ScreenMain:
		content = a.mainMenu.View()
	case ScreenSettings:
		if a.settings != nil {
			content = a.settings.View()
		}
	case ScreenHelp:
		content = a.renderHelp()
	}

	contentBox := lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		contentBox,
		a.renderStatusBar(),
	)
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	return components.TitleBar(a.width, "prefedit", Version)
}

// renderStatusBar renders the bottom status bar.
func (a *App) renderStatusBar() string {
	var statusText string
	switch {
	case a.showHelp:
		statusText = "Press Esc or q to close help"
	case a.currentScreen == ScreenSettings && a.settings != nil:
		statusText = fmt.Sprintf("Page: %s | ?: Help | q: Back", a.settings.Title())
	default:
		statusText = fmt.Sprintf("Screen: %s | ?: Help | q: Quit", a.currentScreen.String())
	}
	return components.StatusBar(a.width, statusText)
}

func renderKeySection(b *strings.Builder, title string, items []components.HelpItem) {
	b.WriteString(components.Styles.Subtitle.Render(title) + "\n")
	for _, item := range items {
		line := fmt.Sprintf("  %s  %s",
			components.Styles.MenuKey.Render(item.Key),
			components.Styles.Normal.Render(item.Desc))
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(components.RenderTitle("Help & Keybindings") + "\n\n")

	renderKeySection(&b, "Global Keybindings", []components.HelpItem{
		{Key: "↑/k", Desc: "Move up"},
		{Key: "↓/j", Desc: "Move down"},
		{Key: "Enter", Desc: "Select/confirm"},
		{Key: "Esc", Desc: "Go back/cancel"},
		{Key: "q", Desc: "Quit (from main menu) or go back"},
		{Key: "Ctrl+Z", Desc: "Suspend; open edits resume where they left off"},
		{Key: "Ctrl+C", Desc: "Force quit"},
		{Key: "?", Desc: "Toggle this help screen"},
	})

	renderKeySection(&b, "Main Menu", []components.HelpItem{
		{Key: "1-9", Desc: "Open a preference page"},
	})

	renderKeySection(&b, "Preference Page", []components.HelpItem{
		{Key: "Enter", Desc: "Edit the selected preference (switches toggle)"},
		{Key: "r", Desc: "Reset the selected preference to its default"},
	})

	renderKeySection(&b, "Editing", []components.HelpItem{
		{Key: "Enter", Desc: "Confirm the value"},
		{Key: "Esc", Desc: "Cancel; in a time range, return to the start time"},
		{Key: "Tab", Desc: "Accept a suggested time"},
	})

	lines := strings.Split(b.String(), "\n")
	a.helpContentLen = len(lines)

	availableHeight := a.height - 6
	if availableHeight < 1 {
		availableHeight = 1
	}

	startLine := a.helpScrollY
	if startLine < 0 {
		startLine = 0
	}
	if startLine > len(lines) {
		startLine = len(lines)
	}
	endLine := startLine + availableHeight
	if endLine > len(lines) {
		endLine = len(lines)
	}

	visibleContent := strings.Join(lines[startLine:endLine], "\n")

	maxScroll := len(lines) - availableHeight
	if maxScroll > 0 {
		scrollInfo := fmt.Sprintf("\n\n[%d/%d] ↑/↓ to scroll", startLine+1, maxScroll+1)
		visibleContent += components.Styles.HelpText.Render(scrollInfo)
	}

	return components.Styles.Border.
		Width(a.width - 4).
		Render(visibleContent)
}

// initSuggestions lists what the user can try for the init error.
func (a *App) initSuggestions() []string {
	var suggestions []string
	if appErr := apperrors.GetAppError(a.initError); appErr != nil && appErr.Suggestion != "" {
		suggestions = append(suggestions, "• "+appErr.Suggestion)
	}

	switch {
	case errors.Is(a.initError, apperrors.ErrStoreLocked):
		suggestions = append(suggestions, "• Another prefedit process holds the store; close it and retry")
	case errors.Is(a.initError, apperrors.ErrSchemaInvalid):
		suggestions = append(suggestions, "• Run 'prefedit schema' to print the built-in schema as a starting point")
	case errors.Is(a.initError, apperrors.ErrConfigInvalid):
		suggestions = append(suggestions, "• Check config.yaml in the prefedit config directory")
	}

	return append(suggestions, "• Verify you have proper permissions for the config and data directories")
}

// renderInitError renders the initialization error screen.
func (a *App) renderInitError() string {
	var b strings.Builder

	b.WriteString(components.Center(components.RenderTitle("Initialization Error"), a.width))
	b.WriteString("\n\n")

	errorMsg := fmt.Sprintf("Failed to initialize application:\n\n%v", a.initError)
	b.WriteString(components.Center(components.RenderError(errorMsg), a.width))
	b.WriteString("\n\n")

	b.WriteString(components.Center(components.Styles.Subtitle.Render("Possible solutions:"), a.width))
	b.WriteString("\n\n")

	for _, suggestion := range a.initSuggestions() {
		b.WriteString(components.Center(suggestion, a.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.Center(components.Styles.HelpText.Render("Press q or Ctrl+C to quit"), a.width))

	return b.String()
}

// Run starts the TUI application.
func Run() error {
	app := NewApp()
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}
