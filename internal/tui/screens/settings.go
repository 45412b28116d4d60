package screens

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtg01100/prefedit/internal/editor"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/logging"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/refresh"
	"github.com/dtg01100/prefedit/internal/session"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/dtg01100/prefedit/internal/tui/components"
)

// clockTickMsg re-evaluates time ranges against the wall clock.
type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

type settingsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Edit    key.Binding
	Reset   key.Binding
	Back    key.Binding
	Suspend key.Binding
}

func newSettingsKeyMap() settingsKeyMap {
	return settingsKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("Enter", "edit")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back")),
		Suspend: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
	}
}

func helpItems(bindings ...key.Binding) []components.HelpItem {
	items := make([]components.HelpItem, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, components.HelpItem{Key: h.Key, Desc: h.Desc})
	}
	return items
}

// SettingsScreen edits the preferences of one schema page.
type SettingsScreen struct {
	page   models.Page
	schema *models.Schema
	values store.Store
	bundle *session.Bundle
	logger *slog.Logger
	now    func() time.Time

	rows        []*prefRow
	controllers []editor.Controller
	dispatcher  *editor.Dispatcher
	broadcaster *refresh.Broadcaster

	// Active edit surface
	form        *EditForm
	formPending bool

	cursor      int
	width       int
	height      int
	goBack      bool
	message     string
	messageType string
	keys        settingsKeyMap
}

// NewSettingsScreen builds the rows and controllers for page and restores
// any sessions saved for it in bundle.
func NewSettingsScreen(page models.Page, schema *models.Schema, values store.Store, bundle *session.Bundle, logger *slog.Logger) *SettingsScreen {
	if logger == nil {
		logger = logging.Discard()
	}
	if bundle == nil {
		bundle = session.NewBundle()
	}

	s := &SettingsScreen{
		page:   page,
		schema: schema,
		values: values,
		bundle: bundle,
		logger: logger.With("page", page.Title),
		now:    time.Now,
		keys:   newSettingsKeyMap(),
	}

	s.broadcaster = refresh.New(values, s.logger)
	for _, pref := range page.Preferences {
		row := &prefRow{
			pref:   pref,
			values: values,
			now:    func() time.Time { return s.now() },
		}
		if pref.DependsOn != "" && schema != nil {
			row.dep = schema.Find(pref.DependsOn)
		}
		row.Refresh()
		s.rows = append(s.rows, row)
		s.broadcaster.Attach(row)
	}
	s.broadcaster.Start()

	s.buildControllers()
	s.restoreSessions()

	return s
}

// buildControllers creates one controller per row. The row index is the
// correlation token.
func (s *SettingsScreen) buildControllers() {
	s.dispatcher = editor.NewDispatcher(s.logger)
	s.controllers = s.controllers[:0]

	for i, row := range s.rows {
		c, err := editor.New(row.pref, i, s.values, editor.SurfaceFunc(s.openForm),
			editor.WithLogger(s.logger),
			editor.WithListener(s.onCommit),
		)
		if err != nil {
			s.logger.Error("no editor for preference", "key", row.pref.Key, "error", err)
			continue
		}
		c.Attach(row)
		s.dispatcher.Add(c)
		s.controllers = append(s.controllers, c)
	}
}

// restoreSessions reinstates sessions saved before a suspend.
func (s *SettingsScreen) restoreSessions() {
	for _, c := range s.controllers {
		blob, ok := s.bundle.Take(c.Key())
		if !ok {
			continue
		}
		if err := c.RestoreState(blob); err != nil {
			s.logger.Warn("discarding saved session", "key", c.Key(), "error", err)
			s.setError(err)
		}
	}
}

// saveSessions moves in-flight sessions into the bundle and tears down the
// open form.
func (s *SettingsScreen) saveSessions() {
	for _, c := range s.controllers {
		blob, err := c.SaveState()
		if err != nil {
			s.logger.Error("saving session failed", "key", c.Key(), "error", err)
			continue
		}
		if blob == nil {
			continue
		}
		s.bundle.Put(c.Key(), blob)
		c.Cancel()
	}
	s.form = nil
	s.formPending = false
}

// openForm is the editing surface handed to every controller.
func (s *SettingsScreen) openForm(req editor.Request) {
	s.form = NewEditForm(req)
	s.form.SetWidth(s.formWidth())
	s.formPending = true
}

func (s *SettingsScreen) onCommit(key, value string) {
	title := key
	if p := s.preference(key); p != nil {
		title = p.Title
	}
	s.setMessage(fmt.Sprintf("%s updated to %s", title, value), "success")
}

func (s *SettingsScreen) preference(key string) *models.Preference {
	for _, row := range s.rows {
		if row.pref.Key == key {
			return &row.pref
		}
	}
	if s.schema != nil {
		return s.schema.Find(key)
	}
	return nil
}

func (s *SettingsScreen) setMessage(text, kind string) {
	s.message = text
	s.messageType = kind
}

func (s *SettingsScreen) setError(err error) {
	s.setMessage(apperrors.FormatErrorForTUI(err), "error")
}

// SetSize sets the screen dimensions.
func (s *SettingsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	if s.form != nil {
		s.form.SetWidth(s.formWidth())
	}
}

func (s *SettingsScreen) formWidth() int {
	if s.width <= 8 {
		return 0
	}
	return s.width - 8
}

// Init initializes the screen.
func (s *SettingsScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if s.form != nil {
		cmds = append(cmds, s.form.Init())
		s.formPending = false
	}
	return tea.Batch(cmds...)
}

// Editing reports whether an edit form has the keyboard.
func (s *SettingsScreen) Editing() bool {
	return s.form != nil
}

// Update handles screen updates.
func (s *SettingsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case SessionResultMsg:
		s.deliver(msg.Result)

	case tea.ResumeMsg:
		s.buildControllers()
		s.restoreSessions()
		s.logger.Info("resumed", "open", s.form != nil)

	case clockTickMsg:
		for _, row := range s.rows {
			if row.pref.Kind == models.KindTimeRange {
				row.Refresh()
			}
		}
		cmds = append(cmds, clockTick())

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Suspend) {
			s.saveSessions()
			s.logger.Info("suspending", "saved", s.bundle.Len())
			return s, tea.Suspend
		}
		if s.form != nil {
			cmds = append(cmds, s.updateForm(msg))
		} else {
			s.handleKey(msg)
		}

	default:
		if s.form != nil {
			cmds = append(cmds, s.updateForm(msg))
		}
	}

	if s.form != nil && s.formPending {
		s.formPending = false
		cmds = append(cmds, s.form.Init())
	}

	return s, tea.Batch(cmds...)
}

func (s *SettingsScreen) updateForm(msg tea.Msg) tea.Cmd {
	form := s.form
	model, cmd := form.Update(msg)
	if f, ok := model.(*EditForm); ok {
		form = f
	}
	if form.Done() {
		if s.form == form {
			s.form = nil
		}
	} else {
		s.form = form
	}
	return cmd
}

// deliver routes a form result to the controller owning its token.
func (s *SettingsScreen) deliver(res editor.Result) {
	handled, err := s.dispatcher.Deliver(res)
	if err != nil {
		s.setError(err)
		return
	}
	if !handled {
		s.logger.Warn("result for unknown row", "token", res.Token)
	}
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Edit):
		s.activate()
	case key.Matches(msg, s.keys.Reset):
		s.reset()
	case key.Matches(msg, s.keys.Back):
		s.goBack = true
	}
}

func (s *SettingsScreen) selected() *prefRow {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor]
}

func (s *SettingsScreen) activate() {
	row := s.selected()
	if row == nil {
		return
	}
	if !row.enabled {
		dep := row.pref.DependsOn
		if row.dep != nil {
			dep = row.dep.Title
		}
		s.setMessage(fmt.Sprintf("Turn on %s to change %s", dep, row.pref.Title), "warning")
		return
	}
	s.message = ""
	row.click()
}

func (s *SettingsScreen) reset() {
	row := s.selected()
	if row == nil {
		return
	}
	if err := s.values.Remove(row.pref.Key); err != nil {
		s.setError(err)
		return
	}
	s.setMessage(fmt.Sprintf("%s reset to default", row.pref.Title), "success")
}

// Close abandons open sessions and stops listening to the store.
func (s *SettingsScreen) Close() {
	for _, c := range s.controllers {
		c.Cancel()
	}
	s.form = nil
	s.broadcaster.Stop()
}

// ShouldGoBack returns true if the screen should go back to the main menu.
func (s *SettingsScreen) ShouldGoBack() bool {
	return s.goBack
}

// ResetGoBack resets the go back state.
func (s *SettingsScreen) ResetGoBack() {
	s.goBack = false
}

// Title returns the page title.
func (s *SettingsScreen) Title() string {
	return s.page.Title
}

// View renders the screen.
func (s *SettingsScreen) View() string {
	var b strings.Builder

	b.WriteString(components.Center(components.RenderTitle(s.page.Title), s.width))
	b.WriteString("\n")
	if s.page.Description != "" {
		b.WriteString(components.Center(components.Styles.Subtitle.Render(s.page.Description), s.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderRows())

	if s.message != "" {
		b.WriteString("\n")
		b.WriteString(s.renderMessage())
		b.WriteString("\n")
	}

	if s.form != nil {
		b.WriteString("\n")
		b.WriteString(components.Styles.Border.Render(s.form.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.form != nil {
		b.WriteString(components.HelpBar(s.width, []components.HelpItem{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: s.escapeHint()},
			{Key: "ctrl+z", Desc: "suspend"},
		}))
	} else {
		b.WriteString(components.HelpBar(s.width, helpItems(
			s.keys.Up, s.keys.Down, s.keys.Edit, s.keys.Reset, s.keys.Back, s.keys.Suspend,
		)))
	}

	return b.String()
}

func (s *SettingsScreen) escapeHint() string {
	req := s.form.Request()
	if req.Kind == models.KindTimeRange && req.Step == session.StepEnd {
		return "previous step"
	}
	return "cancel"
}

func (s *SettingsScreen) renderMessage() string {
	switch s.messageType {
	case "success":
		return components.RenderSuccess(s.message)
	case "warning":
		return components.RenderWarning(s.message)
	case "error":
		// Already carries its own marker.
		return components.Styles.Error.Render(s.message)
	default:
		return components.RenderInfo(s.message)
	}
}

func (s *SettingsScreen) renderRows() string {
	var b strings.Builder

	nameWidth := 28
	if s.width > 0 && s.width < 60 {
		nameWidth = s.width / 2
	}

	for i, row := range s.rows {
		name := components.Truncate(row.pref.Title, nameWidth)
		pad := strings.Repeat(" ", max(nameWidth-len([]rune(name)), 0))

		status := components.StatusIndicator(row.status())
		value := components.Styles.Value.Render(row.summary)

		var line string
		switch {
		case i == s.cursor:
			line = fmt.Sprintf("▸ %s %s%s  %s", status, components.Styles.Selected.Render(name), pad, value)
		case !row.enabled:
			line = fmt.Sprintf("  %s %s%s  %s", status, components.Styles.Disabled.Render(name), pad,
				components.Styles.Disabled.Render(row.summary))
		default:
			line = fmt.Sprintf("  %s %s%s  %s", status, components.Styles.Normal.Render(name), pad, value)
		}
		b.WriteString(line + "\n")

		if i == s.cursor && row.pref.Summary != "" {
			b.WriteString("    " + components.Styles.Subtitle.Render(row.pref.Summary) + "\n")
		}
	}

	return b.String()
}

// prefRow is one settings row. It is both the editable row a controller
// attaches to and the view the broadcaster refreshes.
type prefRow struct {
	pref    models.Preference
	dep     *models.Preference
	values  store.Store
	now     func() time.Time
	onClick func()

	summary   string
	enabled   bool
	activeNow bool
	refreshes int
}

func (r *prefRow) Key() string { return r.pref.Key }

func (r *prefRow) Preference() models.Preference { return r.pref }

func (r *prefRow) SetClickHandler(fn func()) { r.onClick = fn }

func (r *prefRow) click() {
	if r.onClick != nil {
		r.onClick()
	}
}

// Refresh recomputes the summary and enabled state from the store.
func (r *prefRow) Refresh() {
	r.refreshes++
	r.enabled = r.dep == nil || r.values.GetBool(r.dep.Key, r.dep.DefaultBool())
	r.activeNow = false

	value := store.Read(r.values, r.pref)

	switch r.pref.Kind {
	case models.KindSwitch:
		if value == "true" {
			r.summary = "On"
		} else {
			r.summary = "Off"
		}
	case models.KindList:
		r.summary = r.pref.ChoiceLabel(value)
	case models.KindMultiList:
		var labels []string
		for _, v := range models.SplitValues(value) {
			labels = append(labels, r.pref.ChoiceLabel(v))
		}
		r.summary = strings.Join(labels, ", ")
		if len(labels) == 0 {
			r.summary = "None"
		}
	case models.KindNumber:
		r.summary = strings.TrimSpace(value + " " + r.pref.Unit)
	case models.KindText:
		r.summary = value
		if value == "" {
			r.summary = "Not set"
		}
	case models.KindTimeRange:
		p := period.ParsePeriodOrZero(value)
		r.summary = p.String()
		if r.enabled && p.ContainsClock(r.now()) {
			r.activeNow = true
			r.summary += " · active now"
		}
	default:
		r.summary = value
	}
}

func (r *prefRow) status() string {
	switch {
	case !r.enabled:
		return "disabled"
	case r.pref.Kind == models.KindSwitch && r.summary == "On":
		return "on"
	case r.activeNow:
		return "active"
	default:
		return "off"
	}
}
