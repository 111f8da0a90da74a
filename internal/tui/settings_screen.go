package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/config"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldCompany
	settingsFieldDefaultNumber
	settingsFieldTaxLabel
	settingsFieldTaxRate
	settingsFieldItemsPerPage
	settingsFieldCurrencySymbol
	settingsFieldCurrencyCode
	settingsFieldCount
)

var settingsLabels = []string{
	"Output Directory:",
	"Company Name:",
	"Default Number:",
	"Tax Label:",
	"Default Tax Rate (%):",
	"Items Per Page:",
	"Currency Symbol:",
	"Currency Code:",
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) *SettingsModel {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func newSettingsInput(placeholder, value string, width, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = limit
	ti.SetValue(value)
	return ti
}

func (m *SettingsModel) initForm() {
	cfg := m.app.Config.Invoice

	m.fields = make([]textinput.Model, settingsFieldCount)
	m.fields[settingsFieldOutputDir] = newSettingsInput("/path/to/invoices", cfg.OutputDir, 60, 256)
	m.fields[settingsFieldCompany] = newSettingsInput("Your company", cfg.CompanyName, 40, 120)
	m.fields[settingsFieldDefaultNumber] = newSettingsInput("INV-001", cfg.DefaultNumber, 20, 40)
	m.fields[settingsFieldTaxLabel] = newSettingsInput("GST", cfg.TaxLabel, 20, 20)
	m.fields[settingsFieldTaxRate] = newSettingsInput("18", strconv.FormatFloat(cfg.DefaultTaxRate, 'f', -1, 64), 10, 10)
	m.fields[settingsFieldItemsPerPage] = newSettingsInput("15", strconv.Itoa(cfg.ItemsPerPage), 10, 4)
	m.fields[settingsFieldCurrencySymbol] = newSettingsInput("₹", cfg.CurrencySymbol, 10, 8)
	m.fields[settingsFieldCurrencyCode] = newSettingsInput("INR", cfg.CurrencyCode, 10, 8)

	m.fieldFocus = settingsFieldOutputDir
	m.fields[settingsFieldOutputDir].Focus()
}

// parseSettings reads the form into a copy of the invoice settings
func (m *SettingsModel) parseSettings() (config.InvoiceConfig, error) {
	cfg := m.app.Config.Invoice
	value := func(i int) string { return strings.TrimSpace(m.fields[i].Value()) }

	cfg.OutputDir = value(settingsFieldOutputDir)
	cfg.CompanyName = value(settingsFieldCompany)
	cfg.DefaultNumber = value(settingsFieldDefaultNumber)
	cfg.TaxLabel = value(settingsFieldTaxLabel)
	cfg.CurrencySymbol = value(settingsFieldCurrencySymbol)
	cfg.CurrencyCode = strings.ToUpper(value(settingsFieldCurrencyCode))

	if cfg.OutputDir == "" {
		return cfg, fmt.Errorf("output directory is required")
	}
	if cfg.CurrencySymbol == "" && cfg.CurrencyCode == "" {
		return cfg, fmt.Errorf("a currency symbol or code is required")
	}

	taxRate, err := strconv.ParseFloat(value(settingsFieldTaxRate), 64)
	if err != nil || taxRate < 0 {
		return cfg, fmt.Errorf("tax rate must be a non-negative number")
	}
	cfg.DefaultTaxRate = taxRate

	perPage, err := strconv.Atoi(value(settingsFieldItemsPerPage))
	if err != nil || perPage < 1 {
		return cfg, fmt.Errorf("items per page must be a positive number")
	}
	cfg.ItemsPerPage = perPage

	return cfg, nil
}

// saveSettings applies the form to the running app and writes the config
// file in a command.
func (m *SettingsModel) saveSettings() tea.Cmd {
	cfg, err := m.parseSettings()
	if err != nil {
		m.err = err
		return nil
	}

	m.app.Config.Invoice = cfg
	m.app.ApplyConfig()

	a := m.app
	return func() tea.Msg {
		if err := a.SaveConfig(); err != nil {
			return configSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}
		return configSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(configSavedMsg); ok {
		m.mode = settingsModeView
		if saved.err != nil {
			m.err = saved.err
			return m, nil
		}
		m.statusMsg = "Settings saved"
		return m, nil
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	cfg := m.app.Config.Invoice

	labelStyle := lipgloss.NewStyle().Bold(true).Width(24)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	values := []string{
		cfg.OutputDir,
		cfg.CompanyName,
		cfg.DefaultNumber,
		cfg.TaxLabel,
		strconv.FormatFloat(cfg.DefaultTaxRate, 'f', -1, 64) + "%",
		strconv.Itoa(cfg.ItemsPerPage),
		cfg.CurrencySymbol,
		cfg.CurrencyCode,
	}

	s += subtitleStyle.Render("  Invoice Settings") + "\n\n"
	for i, label := range settingsLabels {
		v := values[i]
		if v == "" {
			v = "-"
		}
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(v))
	}

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	for i, label := range settingsLabels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
