// Package components provides shared UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary       = lipgloss.Color("62")  // Muted blue
	ColorPrimaryBright = lipgloss.Color("75")  // Brighter blue
	ColorAccent        = lipgloss.Color("86")  // Cyan/teal
	ColorSurface       = lipgloss.Color("236") // Slightly lighter surface

	ColorText       = lipgloss.Color("252")
	ColorTextMuted  = lipgloss.Color("243")
	ColorTextDim    = lipgloss.Color("239")
	ColorTextBright = lipgloss.Color("15")

	ColorSuccess = lipgloss.Color("82")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorInfo    = lipgloss.Color("117")
)

// Styles contains common styling for the TUI.
var Styles = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Border     lipgloss.Style
	HelpText   lipgloss.Style
	StatusLine lipgloss.Style
	Header     lipgloss.Style

	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuKey      lipgloss.Style

	// Value renders a preference's current value.
	Value lipgloss.Style

	StatusActive   lipgloss.Style
	StatusInactive lipgloss.Style
	StatusError    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 2),
	Subtitle: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	Normal: lipgloss.NewStyle().
		Foreground(ColorText),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent),
	Disabled: lipgloss.NewStyle().
		Foreground(ColorTextDim),

	Error: lipgloss.NewStyle().
		Foreground(ColorError),
	Success: lipgloss.NewStyle().
		Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().
		Foreground(ColorWarning),
	Info: lipgloss.NewStyle().
		Foreground(ColorInfo),

	Border: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1),
	HelpText: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	StatusLine: lipgloss.NewStyle().
		Foreground(ColorTextBright).
		Background(ColorSurface).
		Padding(0, 1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 1),

	MenuItem: lipgloss.NewStyle().
		Foreground(ColorText),
	MenuSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent),
	MenuKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimaryBright),

	Value: lipgloss.NewStyle().
		Foreground(ColorInfo),

	StatusActive: lipgloss.NewStyle().
		Foreground(ColorSuccess),
	StatusInactive: lipgloss.NewStyle().
		Foreground(ColorTextMuted),
	StatusError: lipgloss.NewStyle().
		Foreground(ColorError),
}

// MenuItem represents a menu item with label, description, and key binding.
type MenuItem struct {
	Label       string
	Description string
	Key         string
}

// Menu represents a navigable menu.
type Menu struct {
	Items    []MenuItem
	Cursor   int
	Width    int
	ShowKeys bool
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) *Menu {
	return &Menu{
		Items:    items,
		ShowKeys: true,
	}
}

// SetWidth sets the menu width.
func (m *Menu) SetWidth(width int) {
	m.Width = width
}

// SetItems replaces the items and clamps the cursor.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if m.Cursor >= len(items) {
		m.Cursor = len(items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// Up moves the cursor up.
func (m *Menu) Up() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// Down moves the cursor down.
func (m *Menu) Down() {
	if m.Cursor < len(m.Items)-1 {
		m.Cursor++
	}
}

// Selected returns the currently selected menu item.
func (m *Menu) Selected() MenuItem {
	if m.Cursor >= 0 && m.Cursor < len(m.Items) {
		return m.Items[m.Cursor]
	}
	return MenuItem{}
}

// Render renders the menu with styling.
func (m *Menu) Render() string {
	var b strings.Builder

	for i, item := range m.Items {
		cursor := "  "
		label := Styles.MenuItem.Render(item.Label)
		if i == m.Cursor {
			cursor = Styles.MenuSelected.Render("▸")
			label = Styles.MenuSelected.Render(item.Label)
		}

		key := ""
		if m.ShowKeys && item.Key != "" {
			key = Styles.MenuKey.Render("[" + item.Key + "] ")
		}

		line := lipgloss.JoinHorizontal(lipgloss.Left, cursor, " ", key, label)
		if item.Description != "" {
			line += "\n" + Styles.Subtitle.Render("    "+item.Description)
		}

		b.WriteString(line + "\n")
	}

	return b.String()
}

// HelpItem represents a help item with key and description.
type HelpItem struct {
	Key  string
	Desc string
}

// HelpBar renders a help bar showing keybindings.
func HelpBar(width int, items []HelpItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, Styles.MenuKey.Render(item.Key)+Styles.HelpText.Render(" "+item.Desc))
	}

	content := strings.Join(parts, Styles.HelpText.Render(" • "))
	if width > 3 && lipgloss.Width(content) > width {
		content = Truncate(stripJoin(items), width)
	}

	return Styles.StatusLine.Width(width).Render(content)
}

// stripJoin is the unstyled form of a help bar, used when the styled one
// does not fit.
func stripJoin(items []HelpItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Key+" "+item.Desc)
	}
	return strings.Join(parts, " • ")
}

// TitleBar renders a title bar with the application name and version.
func TitleBar(width int, title, version string) string {
	left := Styles.Header.Render(title)
	right := Styles.Subtitle.Render("v" + version + "  [?] Help  [q] Quit")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		left,
		strings.Repeat(" ", padding),
		right,
	)
}

// StatusBar renders a status line at the bottom of the screen.
func StatusBar(width int, text string) string {
	return Styles.StatusLine.Width(width).Render(text)
}

// Center centers text within a given width.
func Center(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}

// StatusIndicator returns a colored status indicator.
func StatusIndicator(status string) string {
	switch status {
	case "on", "active":
		return Styles.StatusActive.Render("●")
	case "off", "inactive", "disabled":
		return Styles.StatusInactive.Render("○")
	case "editing":
		return Styles.Info.Render("✎")
	case "error":
		return Styles.StatusError.Render("✗")
	default:
		return Styles.StatusInactive.Render("○")
	}
}

// Truncate shortens text to at most maxLen runes, marking the cut with an
// ellipsis.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// RenderTitle renders a title with consistent styling.
func RenderTitle(text string) string {
	return Styles.Title.Render(text)
}

// RenderError renders an error message.
func RenderError(text string) string {
	return Styles.Error.Render("✗ " + text)
}

// RenderSuccess renders a success message.
func RenderSuccess(text string) string {
	return Styles.Success.Render("✓ " + text)
}

// RenderWarning renders a warning message.
func RenderWarning(text string) string {
	return Styles.Warning.Render("⚠ " + text)
}

// RenderInfo renders an info message.
func RenderInfo(text string) string {
	return Styles.Info.Render("ℹ " + text)
}
