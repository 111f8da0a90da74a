package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicedesk/internal/app"
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
	"github.com/andy/invoicedesk/internal/view"
)

// document-level cells come before the row cells
const headerCells = 8

// EditorModel is the invoice document. Edit mode shows one input per field;
// view mode shows the formatted sheet a page at a time.
type EditorModel struct {
	app    *app.App
	width  int
	height int

	cells     []formCell
	focus     int
	fieldErrs map[cellKey]error

	page int // 0-based, view mode only

	exporting bool
	sigPrompt bool
	sigInput  textinput.Model

	status string
	err    error
}

// NewEditorModel creates the editor screen
func NewEditorModel(a *app.App) *EditorModel {
	m := &EditorModel{
		app:       a,
		fieldErrs: make(map[cellKey]error),
	}
	m.rebuildForm()
	return m
}

// IsCapturingInput returns true while a text field has the keyboard
func (m *EditorModel) IsCapturingInput() bool {
	return m.sigPrompt || m.app.Editor.Mode() == domain.ModeEdit
}

func (m *EditorModel) Init() tea.Cmd {
	if m.app.Editor.Mode() == domain.ModeEdit && len(m.cells) > 0 {
		return m.cells[m.focus].focus()
	}
	return nil
}

func (m *EditorModel) editor() *service.Editor {
	return m.app.Editor
}

// rebuildForm recreates the inputs from the document, keeping focus on the
// same field when it still exists.
func (m *EditorModel) rebuildForm() tea.Cmd {
	var focused cellKey
	hadFocus := m.focus < len(m.cells)
	if hadFocus {
		focused = m.cells[m.focus].key
	}

	m.cells = buildForm(m.editor().Invoice())
	m.fieldErrs = make(map[cellKey]error)

	idx := -1
	if hadFocus {
		idx = m.indexOf(focused)
	}
	if idx < 0 {
		idx = clamp(m.focus, 0, len(m.cells)-1)
	}
	m.focus = idx
	m.page = clamp(m.page, 0, len(m.editor().Pages())-1)

	if m.editor().Mode() == domain.ModeEdit && !m.exporting {
		return m.cells[m.focus].focus()
	}
	return nil
}

func (m *EditorModel) indexOf(k cellKey) int {
	for i := range m.cells {
		if m.cells[i].key == k {
			return i
		}
	}
	return -1
}

// moveFocus leaves the current cell showing the normalized stored value,
// unless it holds a value the editor rejected.
func (m *EditorModel) moveFocus(to int) tea.Cmd {
	cur := &m.cells[m.focus]
	cur.blur()
	if _, bad := m.fieldErrs[cur.key]; !bad {
		cur.setValue(rawValue(m.editor().Invoice(), cur.key))
	}

	m.focus = (to + len(m.cells)) % len(m.cells)
	return m.cells[m.focus].focus()
}

// focusedItemID returns the row owning the focused cell, or 0
func (m *EditorModel) focusedItemID() int {
	if m.focus < len(m.cells) {
		return m.cells[m.focus].key.itemID
	}
	return 0
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor().Repaginate()
		m.page = clamp(m.page, 0, len(m.editor().Pages())-1)
		return m, nil

	case RefreshDataMsg:
		return m, m.rebuildForm()

	case exportDoneMsg:
		m.app.Exporter.Finish(msg.job)
		m.exporting = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.status = fmt.Sprintf("%s written to %s", exportLabel(msg.job.Kind), msg.path)
		}
		return m, m.rebuildForm()

	case signatureReadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if err := m.editor().SetSignature(msg.sig); err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Signature attached (%s)", msg.sig.MIME)
		return m, nil

	case tea.KeyMsg:
		if m.sigPrompt {
			return m.updateSignaturePrompt(msg)
		}
		if cmd, handled := m.handleDocumentKey(msg); handled {
			return m, cmd
		}
		if m.editor().Mode() == domain.ModeView {
			return m.updateSheet(msg)
		}
		return m.updateForm(msg)
	}

	// cursor blink and other input plumbing
	if m.sigPrompt {
		var cmd tea.Cmd
		m.sigInput, cmd = m.sigInput.Update(msg)
		return m, cmd
	}
	if m.editor().Mode() == domain.ModeEdit && len(m.cells) > 0 {
		return m, m.cells[m.focus].update(msg)
	}
	return m, nil
}

// handleDocumentKey runs the shortcuts that work in both modes
func (m *EditorModel) handleDocumentKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	e := m.editor()

	switch {
	case key.Matches(msg, EditorKeys.ToggleMode):
		m.clearMessages()
		if m.exporting {
			m.err = service.ErrExportInProgress
			return nil, true
		}
		if e.ToggleMode() == domain.ModeView {
			m.cells[m.focus].blur()
			m.page = clamp(m.page, 0, len(e.Pages())-1)
			return nil, true
		}
		return m.rebuildForm(), true

	case key.Matches(msg, EditorKeys.Print):
		return m.startExport(service.ExportPrint), true

	case key.Matches(msg, EditorKeys.Export):
		return m.startExport(service.ExportPDF), true

	case key.Matches(msg, EditorKeys.Save):
		m.save()
		return nil, true

	case key.Matches(msg, EditorKeys.AddRow):
		m.clearMessages()
		id, err := e.AddRow()
		if err != nil {
			m.err = err
			return nil, true
		}
		m.rebuildForm()
		if idx := m.indexOf(cellKey{service.FieldItemDescription, id}); idx >= 0 {
			return m.moveFocus(idx), true
		}
		return nil, true

	case key.Matches(msg, EditorKeys.RemoveRow):
		m.clearMessages()
		id := m.focusedItemID()
		if id == 0 {
			m.err = errors.New("move to a row to remove it")
			return nil, true
		}
		if err := e.RemoveRow(id); err != nil {
			m.err = err
			return nil, true
		}
		return m.rebuildForm(), true

	case key.Matches(msg, EditorKeys.ToggleTax):
		m.clearMessages()
		if err := e.SetTaxEnabled(!e.Invoice().TaxEnabled); err != nil {
			m.err = err
		}
		return nil, true

	case key.Matches(msg, EditorKeys.Signature):
		m.clearMessages()
		if !e.IsMutable(service.FieldSignature) {
			m.err = service.ErrReadOnly
			return nil, true
		}
		m.sigInput = textinput.New()
		m.sigInput.Placeholder = "/path/to/signature.png"
		m.sigInput.Width = 60
		m.sigInput.CharLimit = 256
		m.sigPrompt = true
		m.cells[m.focus].blur()
		return m.sigInput.Focus(), true

	case key.Matches(msg, EditorKeys.ClearSignature):
		m.clearMessages()
		if err := e.ClearSignature(); err != nil {
			m.err = err
		} else {
			m.status = "Signature removed"
		}
		return nil, true
	}

	return nil, false
}

func (m *EditorModel) clearMessages() {
	m.err = nil
	m.status = ""
}

// startExport snapshots the document on the event loop and renders it in a
// command. The guard stays held until exportDoneMsg comes back.
func (m *EditorModel) startExport(kind service.ExportKind) tea.Cmd {
	m.clearMessages()
	job, err := m.app.Exporter.Begin(kind)
	if err != nil {
		m.err = err
		return nil
	}

	m.exporting = true
	m.cells[m.focus].blur()
	m.page = clamp(m.page, 0, len(m.editor().Pages())-1)
	m.status = fmt.Sprintf("Writing %s...", exportLabel(kind))

	return func() tea.Msg {
		path, err := job.Run(context.Background())
		return exportDoneMsg{job: job, path: path, err: err}
	}
}

// save stores the document as a draft. It reads the editor, so it runs on
// the event loop.
func (m *EditorModel) save() {
	m.clearMessages()
	draft, err := m.app.DraftService.Save(context.Background(), m.editor())
	if err != nil {
		m.err = fmt.Errorf("save failed: %w", err)
		return
	}
	m.status = fmt.Sprintf("Saved draft %s (%s)", service.ShortID(draft.ID), draft.Number)
}

func (m *EditorModel) updateSignaturePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.sigPrompt = false
		return m, m.cells[m.focus].focus()
	case "enter":
		path := strings.TrimSpace(m.sigInput.Value())
		if path == "" {
			m.err = errors.New("signature path cannot be empty")
			return m, nil
		}
		m.sigPrompt = false
		m.err = nil
		return m, tea.Batch(readSignature(path), m.cells[m.focus].focus())
	}

	var cmd tea.Cmd
	m.sigInput, cmd = m.sigInput.Update(msg)
	return m, cmd
}

// readSignature loads the image off the event loop. Only the file is read
// here; the editor is updated when the message arrives.
func readSignature(path string) tea.Cmd {
	return func() tea.Msg {
		sig, err := service.ReadSignature(path, service.MaxSignatureBytes)
		return signatureReadMsg{path: path, sig: sig, err: err}
	}
}

func (m *EditorModel) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pages := len(m.editor().Pages())
	switch {
	case key.Matches(msg, DefaultKeyMap.Right), key.Matches(msg, DefaultKeyMap.Down):
		m.page = clamp(m.page+1, 0, pages-1)
	case key.Matches(msg, DefaultKeyMap.Left), key.Matches(msg, DefaultKeyMap.Up):
		m.page = clamp(m.page-1, 0, pages-1)
	}
	return m, nil
}

func (m *EditorModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cell := &m.cells[m.focus]

	switch {
	case key.Matches(msg, EditorKeys.NextField):
		if !(cell.multiline() && msg.String() == "down") {
			return m, m.moveFocus(m.focus + 1)
		}
	case key.Matches(msg, EditorKeys.PrevField):
		if !(cell.multiline() && msg.String() == "up") {
			return m, m.moveFocus(m.focus - 1)
		}
	case msg.String() == "enter" && !cell.multiline():
		return m, m.moveFocus(m.focus + 1)
	}

	before := cell.value()
	cmd := cell.update(msg)
	if after := cell.value(); after != before {
		m.apply(cell.key, after)
	}
	return m, cmd
}

// apply pushes an edited value into the editor. A rejected value stays in
// the input, flagged, until it is fixed.
func (m *EditorModel) apply(k cellKey, v string) {
	if err := applyCell(m.editor(), k, v); err != nil {
		m.fieldErrs[k] = err
		return
	}
	delete(m.fieldErrs, k)
}

func exportLabel(kind service.ExportKind) string {
	if kind == service.ExportPDF {
		return "PDF"
	}
	return "Print copy"
}

func (m *EditorModel) View() string {
	var s strings.Builder

	e := m.editor()
	badge := modeViewStyle.Render("VIEW")
	if e.Mode() == domain.ModeEdit {
		badge = modeEditStyle.Render("EDIT")
	}
	draft := "unsaved"
	if id := e.DraftID(); id != "" {
		draft = "draft " + service.ShortID(id)
	}
	s.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		badge,
		subtitleStyle.Render(fmt.Sprintf("%d page(s)", len(e.Pages()))),
		subtitleStyle.Render(draft),
	))

	if e.Mode() == domain.ModeEdit {
		s.WriteString(m.viewForm())
	} else {
		s.WriteString(m.viewSheet())
	}

	if m.sigPrompt {
		s.WriteString("\n" + titleStyle.Render("Signature image:") + "\n")
		s.WriteString("  " + m.sigInput.View() + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + statusStyle.Render("  "+m.status) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	s.WriteString("\n" + helpStyle.Render(m.helpLine()))
	return s.String()
}

func (m *EditorModel) helpLine() string {
	if m.sigPrompt {
		return "  enter: attach  esc: cancel"
	}
	if m.editor().Mode() == domain.ModeView {
		return "  ←/→: page  ctrl+e: edit  ctrl+p: print  ctrl+x: pdf  ctrl+s: save"
	}
	return "  tab/shift+tab: field  ctrl+n/ctrl+d: add/remove row  ctrl+t: tax  ctrl+o/ctrl+u: signature\n" +
		"  ctrl+e: view  ctrl+p: print  ctrl+x: pdf  ctrl+s: save"
}

func (m *EditorModel) viewForm() string {
	var s strings.Builder
	e := m.editor()
	inv := e.Invoice()
	f := e.Formatter()
	t := e.Totals()

	for i := 0; i < headerCells && i < len(m.cells); i++ {
		s.WriteString(m.renderCell(i) + "\n")
	}

	tax := "off"
	if inv.TaxEnabled {
		tax = "on"
	}
	sig := "none"
	if inv.Signature != nil {
		sig = inv.Signature.MIME
	}
	s.WriteString(fmt.Sprintf("%s %s    %s %s\n\n",
		labelStyle.Render("Tax"), tax, labelStyle.Render("Signature"), sig))

	s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-4s %-32s %-10s %-5s %14s", "#", "Description", "Rate", "Qty", "Amount")) + "\n")

	first, last := m.visibleRows(len(inv.Items))
	if first > 0 {
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  ... %d row(s) above", first)) + "\n")
	}
	for r := first; r < last; r++ {
		item := inv.Items[r]
		base := headerCells + r*3
		marker := "  "
		if m.focus >= base && m.focus < base+3 {
			marker = "> "
		}
		s.WriteString(fmt.Sprintf("%s%-4d %s %s %s %s\n",
			marker,
			r+1,
			m.cellView(base, 32),
			m.cellView(base+1, 10),
			m.cellView(base+2, 5),
			amountStyle.Render(padLeft(f.Format(item.Amount), 14)),
		))
	}
	if last < len(inv.Items) {
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  ... %d row(s) below", len(inv.Items)-last)) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(totalLine("Subtotal", f.Format(t.Subtotal)))
	if inv.TaxEnabled {
		s.WriteString(totalLine(fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), f.Format(t.TaxAmount)))
	}
	s.WriteString(boldTotalLine("Total", f.Format(t.Total)))
	s.WriteString(totalLine("Balance Due", f.Format(t.BalanceDue)))

	return s.String()
}

// visibleRows picks the window of rows to draw so the focused row stays on
// screen.
func (m *EditorModel) visibleRows(n int) (int, int) {
	room := m.height - 32
	if room < 5 {
		room = 5
	}
	if n <= room {
		return 0, n
	}
	focused := 0
	if m.focus >= headerCells {
		focused = (m.focus - headerCells) / 3
	}
	first := clamp(focused-room/2, 0, n-room)
	return first, first + room
}

func (m *EditorModel) renderCell(i int) string {
	c := &m.cells[i]
	label := "  " + c.label
	if i == m.focus {
		label = "> " + c.label
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label)+" ", c.view())
	if err, bad := m.fieldErrs[c.key]; bad {
		line += "  " + errorStyle.Render(err.Error())
	}
	return line
}

func (m *EditorModel) cellView(i, width int) string {
	c := &m.cells[i]
	v := padRight(c.view(), width)
	if _, bad := m.fieldErrs[c.key]; bad {
		return warningStyle.Render(v)
	}
	return v
}

func totalLine(label, value string) string {
	return fmt.Sprintf("  %s %s\n", padLeft(label, 44), padLeft(value, 16))
}

func boldTotalLine(label, value string) string {
	return totalStyle.Render(strings.TrimSuffix(totalLine(label, value), "\n")) + "\n"
}

func (m *EditorModel) viewSheet() string {
	sheet := m.editor().Sheet()
	if sheet.PageCount() == 0 {
		return subtitleStyle.Render("  Nothing to show")
	}
	page := sheet.Pages[clamp(m.page, 0, sheet.PageCount()-1)]
	company := m.app.Config.Invoice.CompanyName

	var s strings.Builder
	if page.IsContinuation() {
		title := "Invoice " + sheet.Number + " - Continued"
		if company != "" {
			title = company + " / " + title
		}
		s.WriteString(titleStyle.Render(title) + "\n\n")
	} else {
		s.WriteString(sheetHeader(sheet, company))
	}

	s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-4s %-32s %12s %6s %14s", "#", "Description", "Rate", "Qty", "Amount")) + "\n")
	for _, r := range page.Rows {
		s.WriteString(fmt.Sprintf("  %-4d %s %s %s %s\n",
			r.Index,
			padRight(truncateStr(r.Description, 32), 32),
			padLeft(r.Rate, 12),
			padLeft(r.Quantity, 6),
			amountStyle.Render(padLeft(r.Amount, 14)),
		))
	}

	if page.IsLast {
		s.WriteString("\n")
		s.WriteString(totalLine("Subtotal", sheet.Subtotal))
		if sheet.ShowTax {
			s.WriteString(totalLine(sheet.TaxLabel, sheet.TaxAmount))
		}
		s.WriteString(boldTotalLine("Total", sheet.Total))
		s.WriteString(totalLine("Received", sheet.Received))
		s.WriteString(boldTotalLine("Balance Due", sheet.BalanceDue))

		sig := view.Placeholder
		if sheet.HasSignature {
			sig = "[signature attached]"
		}
		s.WriteString("\n" + fmt.Sprintf("  %s %s\n", labelStyle.Render("Signature"), sig))
	}

	s.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("  Page %d of %d", page.Number, sheet.PageCount())))
	return s.String()
}

func sheetHeader(sheet view.Sheet, company string) string {
	var s strings.Builder
	title := "INVOICE"
	if company != "" {
		title = company + "  " + title
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Invoice #"), sheet.Number))
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Date"), sheet.IssueDate))
	s.WriteString(fmt.Sprintf("  %s %s\n\n", labelStyle.Render("Due"), sheet.DueDate))

	s.WriteString("  " + labelStyle.Render("Bill To") + "\n")
	s.WriteString("    " + sheet.ClientName + "\n")
	for _, line := range sheet.ClientAddress {
		s.WriteString("    " + line + "\n")
	}
	s.WriteString("    " + sheet.ClientContact + "\n\n")
	return s.String()
}
