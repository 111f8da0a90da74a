package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/domain"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenDrafts
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "Invoice"
	case ScreenDrafts:
		return "Drafts"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// screenModel is what every screen implements. Screens update in place.
type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// The editor always exists; other screens are lazy initialized
	editor   *EditorModel
	drafts   *DraftsModel
	settings *SettingsModel

	// Error state
	err       error
	quitMsg   string // shown when quit is blocked
	quitArmed bool   // the next quit discards unsaved changes
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenEditor,
		editor:        NewEditorModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	refresh := func() tea.Msg { return RefreshDataMsg{} }
	switch screen {
	case ScreenEditor:
		return refresh
	case ScreenDrafts:
		if m.drafts == nil {
			m.drafts = NewDraftsModel(m.app)
			return m.drafts.Init()
		}
		return refresh
	case ScreenSettings:
		if m.settings == nil {
			m.settings = NewSettingsModel(m.app)
			return m.settings.Init()
		}
		return refresh
	}
	return nil
}

func (m *Model) screen(s Screen) screenModel {
	switch s {
	case ScreenEditor:
		return m.editor
	case ScreenDrafts:
		if m.drafts != nil {
			return m.drafts
		}
	case ScreenSettings:
		if m.settings != nil {
			return m.settings
		}
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (E, O, comma, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screen(m.currentScreen).(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchScreen(s Screen) tea.Cmd {
	m.currentScreen = s
	return m.initScreen(s)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// the editor repaginates on resize whichever screen is showing
		_, cmd := m.editor.Update(msg)
		return m, cmd

	case exportDoneMsg, signatureReadMsg:
		// the editor owns these even when another screen is showing
		_, cmd := m.editor.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Clear quit warning on any keypress
		armed := m.quitArmed
		m.quitMsg = ""
		m.quitArmed = false

		if msg.String() == "ctrl+c" {
			return m.quit(armed)
		}

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m.quit(armed)

			case key.Matches(msg, DefaultKeyMap.Editor):
				return m, m.switchScreen(ScreenEditor)

			case key.Matches(msg, DefaultKeyMap.Drafts):
				return m, m.switchScreen(ScreenDrafts)

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchScreen(ScreenSettings)
			}
		}

	case SwitchScreenMsg:
		m.err = nil
		return m, m.switchScreen(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if s := m.screen(m.currentScreen); s != nil {
		_, cmd = s.Update(msg)
	}
	return m, cmd
}

// quit refuses to leave while an export is still writing its file. A
// document in edit mode or with unsaved changes needs a second quit in a row.
func (m Model) quit(confirmed bool) (tea.Model, tea.Cmd) {
	if m.app.Exporter.Busy() {
		m.quitMsg = "An export is still running. Wait for it to finish before quitting."
		return m, nil
	}
	e := m.app.Editor
	if !confirmed && (e.Mode() == domain.ModeEdit || e.Dirty()) {
		m.quitMsg = "You have unsaved changes. Quit again to discard them."
		m.quitArmed = true
		return m, nil
	}
	return m, tea.Quit
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("invoicedesk - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[E]ditor  [O]pen draft  [,] Settings  [Q]uit")

	// Current screen content
	content := "Loading..."
	if s := m.screen(m.currentScreen); s != nil {
		content = s.View()
	}

	// Error/warning display
	errorDisplay := ""
	if m.quitMsg != "" {
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.quitMsg))
	} else if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
