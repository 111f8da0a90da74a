package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

// cellKey identifies a form cell across rebuilds. itemID is zero for
// document-level fields.
type cellKey struct {
	field  service.Field
	itemID int
}

// formCell is one input bound to one editor field. The client address is
// the only multi-line field and uses a textarea.
type formCell struct {
	key   cellKey
	label string
	input textinput.Model
	area  *textarea.Model
}

func newInputCell(k cellKey, label, placeholder string, width, limit int) formCell {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = limit
	ti.Prompt = ""
	return formCell{key: k, label: label, input: ti}
}

func newAreaCell(k cellKey, label string, width int) formCell {
	ta := textarea.New()
	ta.Placeholder = "Street, city..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(width)
	ta.SetHeight(3)
	ta.CharLimit = 512
	return formCell{key: k, label: label, area: &ta}
}

func (c *formCell) value() string {
	if c.area != nil {
		return c.area.Value()
	}
	return c.input.Value()
}

func (c *formCell) setValue(v string) {
	if c.area != nil {
		c.area.SetValue(v)
		return
	}
	c.input.SetValue(v)
}

func (c *formCell) focus() tea.Cmd {
	if c.area != nil {
		return c.area.Focus()
	}
	return c.input.Focus()
}

func (c *formCell) blur() {
	if c.area != nil {
		c.area.Blur()
		return
	}
	c.input.Blur()
}

func (c *formCell) multiline() bool {
	return c.area != nil
}

func (c *formCell) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.area != nil {
		*c.area, cmd = c.area.Update(msg)
		return cmd
	}
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *formCell) view() string {
	if c.area != nil {
		return c.area.View()
	}
	return c.input.View()
}

// buildForm lays out one cell per editable field, document fields first
// and then three cells per row.
func buildForm(inv *domain.Invoice) []formCell {
	cells := []formCell{
		newInputCell(cellKey{field: service.FieldNumber}, "Invoice #", "INV-001", 24, 40),
		newInputCell(cellKey{field: service.FieldIssueDate}, "Date", "YYYY-MM-DD", 12, 10),
		newInputCell(cellKey{field: service.FieldDueDate}, "Due", "YYYY-MM-DD", 12, 10),
		newInputCell(cellKey{field: service.FieldClientName}, "Client", "Client name", 40, 120),
		newAreaCell(cellKey{field: service.FieldClientAddress}, "Address", 40),
		newInputCell(cellKey{field: service.FieldClientContact}, "Contact", "Email or phone", 40, 120),
		newInputCell(cellKey{field: service.FieldTaxRate}, "Tax rate %", "18", 8, 8),
		newInputCell(cellKey{field: service.FieldReceivedAmount}, "Received", "0", 14, 20),
	}
	for _, item := range inv.Items {
		cells = append(cells,
			newInputCell(cellKey{service.FieldItemDescription, item.ID}, "Description", "Description", 32, 200),
			newInputCell(cellKey{service.FieldItemRate, item.ID}, "Rate", "0", 10, 16),
			newInputCell(cellKey{service.FieldItemQuantity, item.ID}, "Qty", "1", 5, 6),
		)
	}
	for i := range cells {
		cells[i].setValue(rawValue(inv, cells[i].key))
	}
	return cells
}

// rawValue is the input text for a field as stored in the document
func rawValue(inv *domain.Invoice, k cellKey) string {
	switch k.field {
	case service.FieldNumber:
		return inv.Number
	case service.FieldIssueDate:
		return formDate(inv.IssueDate)
	case service.FieldDueDate:
		return formDate(inv.DueDate)
	case service.FieldClientName:
		return inv.Client.Name
	case service.FieldClientAddress:
		return inv.Client.Address
	case service.FieldClientContact:
		return inv.Client.Contact
	case service.FieldTaxRate:
		return inv.TaxRate.String()
	case service.FieldReceivedAmount:
		return inv.ReceivedAmount.String()
	}

	item, err := inv.Item(k.itemID)
	if err != nil {
		return ""
	}
	switch k.field {
	case service.FieldItemDescription:
		return item.Description
	case service.FieldItemRate:
		return item.Rate.String()
	case service.FieldItemQuantity:
		return strconv.Itoa(item.Quantity)
	}
	return ""
}

// applyCell pushes a cell's text into the editor
func applyCell(e *service.Editor, k cellKey, v string) error {
	switch k.field {
	case service.FieldNumber:
		return e.SetNumber(v)
	case service.FieldIssueDate:
		return e.SetIssueDate(v)
	case service.FieldDueDate:
		return e.SetDueDate(v)
	case service.FieldClientName:
		return e.SetClientName(v)
	case service.FieldClientAddress:
		return e.SetClientAddress(v)
	case service.FieldClientContact:
		return e.SetClientContact(v)
	case service.FieldTaxRate:
		return e.SetTaxRate(v)
	case service.FieldReceivedAmount:
		return e.SetReceivedAmount(v)
	case service.FieldItemDescription:
		return e.SetItemDescription(k.itemID, v)
	case service.FieldItemRate:
		return e.SetItemRate(k.itemID, v)
	case service.FieldItemQuantity:
		return e.SetItemQuantity(k.itemID, v)
	}
	return nil
}

func formDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}
