// Package screens provides individual TUI screens for the application.
package screens

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/tui/components"
)

// Navigation targets reported by the main menu.
const (
	TargetPage = "page"
	TargetQuit = "quit"
)

// maxPageHotkeys is the number of pages reachable by digit keys.
const maxPageHotkeys = 9

// MainMenuScreen lists the schema pages.
type MainMenuScreen struct {
	menu             *components.Menu
	pages            []models.Page
	width            int
	height           int
	navigate         bool
	navigationTarget string
	page             int
}

// NewMainMenuScreen creates a main menu with no pages. Call SetPages once
// the schema is loaded.
func NewMainMenuScreen() *MainMenuScreen {
	s := &MainMenuScreen{menu: components.NewMenu(nil)}
	s.SetPages(nil)
	return s
}

// SetPages replaces the menu entries with one per page plus Quit.
func (s *MainMenuScreen) SetPages(pages []models.Page) {
	s.pages = pages

	items := make([]components.MenuItem, 0, len(pages)+1)
	for i, p := range pages {
		item := components.MenuItem{Label: p.Title, Description: p.Description}
		if i < maxPageHotkeys {
			item.Key = strconv.Itoa(i + 1)
		}
		items = append(items, item)
	}
	items = append(items, components.MenuItem{
		Label:       "Quit",
		Description: "Exit the application",
		Key:         "Q",
	})

	s.menu.SetItems(items)
}

// SetSize sets the screen dimensions.
func (s *MainMenuScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.menu.SetWidth(width - 8)
}

// Init initializes the screen.
func (s *MainMenuScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates.
func (s *MainMenuScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		key := strings.ToLower(msg.String())
		switch key {
		case "up", "k":
			s.menu.Up()
		case "down", "j":
			s.menu.Down()
		case "enter", " ":
			s.selectCurrent()
		case "q":
			s.navigateTo(TargetQuit, 0)
		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.pages) && n <= maxPageHotkeys {
				s.navigateTo(TargetPage, n-1)
			}
		}
	}

	return s, nil
}

// selectCurrent selects the current menu item.
func (s *MainMenuScreen) selectCurrent() {
	if s.menu.Cursor < len(s.pages) {
		s.navigateTo(TargetPage, s.menu.Cursor)
		return
	}
	s.navigateTo(TargetQuit, 0)
}

func (s *MainMenuScreen) navigateTo(target string, page int) {
	s.navigationTarget = target
	s.page = page
	s.navigate = true
}

// ShouldNavigate returns true if the screen should navigate to another screen.
func (s *MainMenuScreen) ShouldNavigate() bool {
	return s.navigate
}

// GetNavigationTarget returns TargetPage or TargetQuit.
func (s *MainMenuScreen) GetNavigationTarget() string {
	return s.navigationTarget
}

// SelectedPage is the page index chosen with TargetPage.
func (s *MainMenuScreen) SelectedPage() int {
	return s.page
}

// ResetNavigation resets the navigation state.
func (s *MainMenuScreen) ResetNavigation() {
	s.navigate = false
	s.navigationTarget = ""
}

// View renders the screen.
func (s *MainMenuScreen) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(components.Center(components.RenderTitle("Preferences"), s.width))
	b.WriteString("\n\n")

	if len(s.pages) == 0 {
		b.WriteString(components.Center(components.Styles.Subtitle.Render("Loading schema..."), s.width))
		b.WriteString("\n\n")
	}

	b.WriteString(components.Center(s.menu.Render(), s.width))

	b.WriteString("\n\n")
	b.WriteString(components.HelpBar(s.width, []components.HelpItem{
		{Key: "↑/↓", Desc: "navigate"},
		{Key: "Enter", Desc: "open"},
		{Key: "1-9", Desc: "jump to page"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}))

	return b.String()
}
