package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

// DraftsModel lists saved drafts and opens them in the editor
type DraftsModel struct {
	app       *app.App
	drafts    []*domain.Draft
	cursor    int
	loading   bool
	confirm   bool // waiting for y/n on delete
	err       error
	statusMsg string
}

// NewDraftsModel creates a new drafts screen model
func NewDraftsModel(a *app.App) *DraftsModel {
	return &DraftsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true while a delete is waiting for confirmation
func (m *DraftsModel) IsCapturingInput() bool {
	return m.confirm
}

func (m *DraftsModel) Init() tea.Cmd {
	return m.loadDrafts()
}

// loadDrafts only touches the draft store, so it can run as a command
func (m *DraftsModel) loadDrafts() tea.Cmd {
	svc := m.app.DraftService
	return func() tea.Msg {
		drafts, err := svc.List(context.Background())
		return draftsDataMsg{drafts: drafts, err: err}
	}
}

func (m *DraftsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadDrafts()

	case draftsDataMsg:
		m.loading = false
		m.err = msg.err
		m.drafts = msg.drafts
		m.cursor = clamp(m.cursor, 0, len(m.drafts)-1)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *DraftsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.drafts)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.drafts) > 0 {
			return m, m.open(m.drafts[m.cursor])
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.app.Editor.Reset()
		m.statusMsg = ""
		return m, switchTo(ScreenEditor)
	case key.Matches(msg, DefaultKeyMap.Delete):
		if len(m.drafts) > 0 {
			m.confirm = true
			m.statusMsg = ""
		}
	}

	return m, nil
}

// open loads a draft into the editor. It runs on the event loop because it
// replaces the editor's document.
func (m *DraftsModel) open(d *domain.Draft) tea.Cmd {
	opened, err := m.app.DraftService.Open(context.Background(), d.ID, m.app.Editor)
	if opened == nil {
		m.err = err
		return nil
	}
	cmd := switchTo(ScreenEditor)
	if err != nil {
		// partially loaded; the editor still shows what could be read
		return tea.Batch(cmd, func() tea.Msg { return ErrorMsg{Err: err} })
	}
	return cmd
}

func (m *DraftsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirm = false
	if msg.String() != "y" {
		m.statusMsg = "Delete cancelled"
		return m, nil
	}

	d := m.drafts[m.cursor]
	if err := m.app.DraftService.Delete(context.Background(), d.ID); err != nil {
		m.err = err
		return m, nil
	}
	if m.app.Editor.DraftID() == d.ID {
		m.app.Editor.SetDraftID("")
	}
	m.statusMsg = fmt.Sprintf("Deleted draft %s", service.ShortID(d.ID))
	m.loading = true
	return m, m.loadDrafts()
}

func switchTo(s Screen) tea.Cmd {
	return func() tea.Msg { return SwitchScreenMsg{Screen: s} }
}

func (m *DraftsModel) View() string {
	if m.loading {
		return "Loading..."
	}

	var s string
	s += titleStyle.Render("Drafts") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.drafts) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No saved drafts. Press 'n' to start a new invoice.")
		return s
	}

	f := m.app.Editor.Formatter()
	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-8s  %-14s  %-24s  %14s  %s",
		"ID", "Number", "Client", "Total", "Updated",
	)) + "\n"

	for i, d := range m.drafts {
		client := d.ClientName
		if client == "" {
			client = "-"
		}
		line := fmt.Sprintf("  %-8s  %-14s  %-24s  %s  %s",
			service.ShortID(d.ID),
			truncateStr(d.Number, 14),
			truncateStr(client, 24),
			padLeft(f.Format(d.Total), 14),
			d.UpdatedAt.Local().Format("Jan 02 15:04"),
		)
		if d.ID == m.app.Editor.DraftID() {
			line += " *"
		}

		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	if m.confirm {
		d := m.drafts[m.cursor]
		s += "\n" + warningStyle.Render(fmt.Sprintf("  Delete draft %s (%s)? [y/N]", service.ShortID(d.ID), d.Number))
		return s
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: open  n: new invoice  d: delete")
	return s
}
