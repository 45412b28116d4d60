package components

import (
	"strings"
	"testing"
)

func TestNewMenu(t *testing.T) {
	items := []MenuItem{
		{Label: "Notifications", Description: "Alerts and quiet hours", Key: "1"},
		{Label: "Daily routine", Description: "", Key: "2"},
		{Label: "Quit", Key: "Q"},
	}

	menu := NewMenu(items)

	if len(menu.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(menu.Items))
	}
	if menu.Cursor != 0 {
		t.Errorf("Expected cursor at 0, got %d", menu.Cursor)
	}
	if !menu.ShowKeys {
		t.Error("Expected ShowKeys to be true by default")
	}
}

func TestMenu_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		move     func(*Menu)
		expected int
	}{
		{"up from middle", 1, (*Menu).Up, 0},
		{"up from first", 0, (*Menu).Up, 0},
		{"down from middle", 1, (*Menu).Down, 2},
		{"down from last", 2, (*Menu).Down, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := NewMenu([]MenuItem{{Label: "1"}, {Label: "2"}, {Label: "3"}})
			menu.Cursor = tt.initial
			tt.move(menu)
			if menu.Cursor != tt.expected {
				t.Errorf("Cursor = %d, expected %d", menu.Cursor, tt.expected)
			}
		})
	}
}

func TestMenu_SetItemsClampsCursor(t *testing.T) {
	menu := NewMenu([]MenuItem{{Label: "1"}, {Label: "2"}, {Label: "3"}})
	menu.Cursor = 2

	menu.SetItems([]MenuItem{{Label: "only"}})
	if menu.Cursor != 0 {
		t.Errorf("Cursor = %d, expected 0", menu.Cursor)
	}

	menu.SetItems(nil)
	if menu.Cursor != 0 {
		t.Errorf("Cursor on empty menu = %d, expected 0", menu.Cursor)
	}
	if got := menu.Selected(); got.Label != "" {
		t.Errorf("Selected() on empty menu = %+v", got)
	}
}

func TestMenu_Render(t *testing.T) {
	menu := NewMenu([]MenuItem{
		{Label: "Notifications", Description: "Alerts and quiet hours", Key: "1"},
		{Label: "Quit", Key: "Q"},
	})

	rendered := menu.Render()
	for _, want := range []string{"Notifications", "Alerts and quiet hours", "[1]", "Quit", "▸"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() missing %q:\n%s", want, rendered)
		}
	}

	menu.ShowKeys = false
	if strings.Contains(menu.Render(), "[Q]") {
		t.Error("Render() shows keys with ShowKeys false")
	}
}

func TestHelpBar(t *testing.T) {
	items := []HelpItem{
		{Key: "↑/↓", Desc: "navigate"},
		{Key: "Enter", Desc: "edit"},
		{Key: "Esc", Desc: "back"},
	}

	for _, width := range []int{80, 20, 10, 0} {
		if HelpBar(width, items) == "" {
			t.Errorf("HelpBar(%d) returned empty string", width)
		}
	}
	if !strings.Contains(HelpBar(80, items), "edit") {
		t.Error("HelpBar() missing item description")
	}
}

func TestTitleBar(t *testing.T) {
	rendered := TitleBar(80, "prefedit", "1.2.0")
	if !strings.Contains(rendered, "prefedit") || !strings.Contains(rendered, "v1.2.0") {
		t.Errorf("TitleBar() = %q", rendered)
	}
	if TitleBar(5, "prefedit", "1.2.0") == "" {
		t.Error("TitleBar() on narrow width returned empty string")
	}
}

func TestStatusBar(t *testing.T) {
	if !strings.Contains(StatusBar(60, "Screen: Settings"), "Screen: Settings") {
		t.Error("StatusBar() lost its text")
	}
}

func TestCenter(t *testing.T) {
	if !strings.Contains(Center("Title", 20), "Title") {
		t.Error("Center() lost its text")
	}
}

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		status   string
		contains string
	}{
		{"on", "●"},
		{"active", "●"},
		{"off", "○"},
		{"disabled", "○"},
		{"editing", "✎"},
		{"error", "✗"},
		{"", "○"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			result := StatusIndicator(tt.status)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("StatusIndicator(%q) = %q, expected to contain %q", tt.status, result, tt.contains)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLen   int
		expected string
	}{
		{name: "shorter text", text: "Hi", maxLen: 10, expected: "Hi"},
		{name: "exact length", text: "Hello", maxLen: 5, expected: "Hello"},
		{name: "longer text", text: "Hello World", maxLen: 8, expected: "Hello..."},
		{name: "maxLen 3", text: "Hello", maxLen: 3, expected: "Hel"},
		{name: "maxLen 0", text: "Hello", maxLen: 0, expected: ""},
		{name: "multibyte", text: "22:00–7:00 quiet", maxLen: 8, expected: "22:00..."},
		{name: "empty text", text: "", maxLen: 5, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.text, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.text, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestRenderMessages(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		prefix string
	}{
		{"title", RenderTitle, ""},
		{"error", RenderError, "✗"},
		{"success", RenderSuccess, "✓"},
		{"warning", RenderWarning, "⚠"},
		{"info", RenderInfo, "ℹ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.render("quiet hours saved")
			if !strings.Contains(result, "quiet hours saved") {
				t.Errorf("result %q lost its text", result)
			}
			if !strings.Contains(result, tt.prefix) {
				t.Errorf("result %q missing %q", result, tt.prefix)
			}
		})
	}
}
