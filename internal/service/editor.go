package service

import (
	"errors"
	"time"

	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/money"
	"github.com/andy/invoicedesk/internal/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrReadOnly = errors.New("document is read-only in view mode")

// Field identifies an editable part of the document
type Field int

const (
	FieldNumber Field = iota
	FieldIssueDate
	FieldDueDate
	FieldClientName
	FieldClientAddress
	FieldClientContact
	FieldReceivedAmount
	FieldTaxEnabled
	FieldTaxRate
	FieldItemDescription
	FieldItemRate
	FieldItemQuantity
	FieldSignature
)

// EditorConfig holds the document defaults
type EditorConfig struct {
	ItemsPerPage   int
	DefaultNumber  string
	DefaultTaxRate decimal.Decimal
	TaxLabel       string
	Formatter      money.Formatter
	StartMode      domain.Mode
	Now            func() time.Time
}

// Editor owns the document being edited and keeps its totals, pages and
// display text consistent. It is not safe for concurrent use; every call is
// expected to come from the UI event loop.
type Editor struct {
	cfg    EditorConfig
	logger *zap.Logger

	inv     *domain.Invoice
	mode    domain.Mode
	totals  domain.Totals
	pages   []domain.Page
	sheet   view.Sheet
	draftID string
	dirty   bool // changed since the last save or open
}

// NewEditor creates an editor holding a fresh invoice
func NewEditor(cfg EditorConfig, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Editor{cfg: withDefaults(cfg), logger: logger, mode: cfg.StartMode}
	e.Reset()
	return e
}

func withDefaults(cfg EditorConfig) EditorConfig {
	if cfg.ItemsPerPage < 1 {
		cfg.ItemsPerPage = domain.DefaultItemsPerPage
	}
	if cfg.Formatter.Symbol == "" {
		cfg.Formatter = money.Default
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

// Reconfigure applies new settings to the open document. Pages and view
// text are rebuilt; the document itself is untouched.
func (e *Editor) Reconfigure(cfg EditorConfig) {
	if cfg.Now == nil {
		cfg.Now = e.cfg.Now
	}
	e.cfg = withDefaults(cfg)
	e.repaginate()
	e.refreshView()
}

// Reset replaces the document with a fresh invoice
func (e *Editor) Reset() {
	e.inv = domain.NewInvoice(e.cfg.DefaultNumber, e.cfg.Now(), e.cfg.DefaultTaxRate)
	e.draftID = ""
	e.dirty = false
	e.recompute()
	e.repaginate()
	e.refreshView()
}

// Mode returns the current presentation mode
func (e *Editor) Mode() domain.Mode {
	return e.mode
}

// ToggleMode flips between view and edit and returns the new mode
func (e *Editor) ToggleMode() domain.Mode {
	e.SetMode(e.mode.Toggle())
	return e.mode
}

// SetMode switches mode. The view text is refreshed when entering view mode.
func (e *Editor) SetMode(m domain.Mode) {
	e.mode = m
	if m == domain.ModeView {
		e.refreshView()
	}
	e.logger.Debug("mode changed", zap.Stringer("mode", m))
}

// IsMutable reports whether the field accepts input in the current mode
func (e *Editor) IsMutable(Field) bool {
	return e.mode == domain.ModeEdit
}

// SetNumber sets the invoice number
func (e *Editor) SetNumber(raw string) error {
	return e.mutate(FieldNumber, false, func(inv *domain.Invoice) error {
		inv.Number = raw
		return nil
	})
}

// SetIssueDate sets the issue date. Empty input clears it.
func (e *Editor) SetIssueDate(raw string) error {
	return e.mutate(FieldIssueDate, false, func(inv *domain.Invoice) error {
		return inv.SetIssueDate(raw)
	})
}

// SetDueDate sets the due date. Empty input clears it.
func (e *Editor) SetDueDate(raw string) error {
	return e.mutate(FieldDueDate, false, func(inv *domain.Invoice) error {
		return inv.SetDueDate(raw)
	})
}

func (e *Editor) SetClientName(raw string) error {
	return e.mutate(FieldClientName, false, func(inv *domain.Invoice) error {
		inv.Client.Name = raw
		return nil
	})
}

func (e *Editor) SetClientAddress(raw string) error {
	return e.mutate(FieldClientAddress, false, func(inv *domain.Invoice) error {
		inv.Client.Address = raw
		return nil
	})
}

func (e *Editor) SetClientContact(raw string) error {
	return e.mutate(FieldClientContact, false, func(inv *domain.Invoice) error {
		inv.Client.Contact = raw
		return nil
	})
}

// SetReceivedAmount parses the amount already paid
func (e *Editor) SetReceivedAmount(raw string) error {
	return e.mutate(FieldReceivedAmount, false, func(inv *domain.Invoice) error {
		inv.SetReceivedAmount(raw)
		return nil
	})
}

// SetTaxEnabled turns the tax row on or off
func (e *Editor) SetTaxEnabled(enabled bool) error {
	return e.mutate(FieldTaxEnabled, false, func(inv *domain.Invoice) error {
		inv.TaxEnabled = enabled
		return nil
	})
}

// SetTaxRate parses the tax percentage
func (e *Editor) SetTaxRate(raw string) error {
	return e.mutate(FieldTaxRate, false, func(inv *domain.Invoice) error {
		inv.SetTaxRate(raw)
		return nil
	})
}

// SetItemDescription updates the description of row id
func (e *Editor) SetItemDescription(id int, raw string) error {
	return e.mutateItem(FieldItemDescription, id, func(item *domain.LineItem) {
		item.SetDescription(raw)
	})
}

// SetItemRate updates the unit rate of row id
func (e *Editor) SetItemRate(id int, raw string) error {
	return e.mutateItem(FieldItemRate, id, func(item *domain.LineItem) {
		item.SetRate(raw)
	})
}

// SetItemQuantity updates the quantity of row id
func (e *Editor) SetItemQuantity(id int, raw string) error {
	return e.mutateItem(FieldItemQuantity, id, func(item *domain.LineItem) {
		item.SetQuantity(raw)
	})
}

// AddRow appends an empty row and returns its ID
func (e *Editor) AddRow() (int, error) {
	var id int
	err := e.mutate(FieldItemDescription, true, func(inv *domain.Invoice) error {
		id = inv.AddItem().ID
		return nil
	})
	return id, err
}

// RemoveRow deletes row id. The last row cannot be removed.
func (e *Editor) RemoveRow(id int) error {
	return e.mutate(FieldItemDescription, true, func(inv *domain.Invoice) error {
		return inv.RemoveItem(id)
	})
}

// SetSignature attaches a signature image
func (e *Editor) SetSignature(sig *domain.Signature) error {
	if sig == nil {
		return domain.ErrInvalidSignature
	}
	return e.mutate(FieldSignature, false, func(inv *domain.Invoice) error {
		inv.Signature = sig
		return nil
	})
}

// ClearSignature removes the signature image
func (e *Editor) ClearSignature() error {
	return e.mutate(FieldSignature, false, func(inv *domain.Invoice) error {
		inv.Signature = nil
		return nil
	})
}

// Invoice returns a deep copy of the document
func (e *Editor) Invoice() *domain.Invoice {
	return e.inv.Clone()
}

// Totals returns the totals from the last recompute
func (e *Editor) Totals() domain.Totals {
	return e.totals
}

// Pages returns the current pagination
func (e *Editor) Pages() []domain.Page {
	return e.pages
}

// Sheet returns the display text. It is only guaranteed fresh right after
// entering view mode; edit mode shows raw input instead.
func (e *Editor) Sheet() view.Sheet {
	return e.sheet
}

// Formatter returns the currency formatter
func (e *Editor) Formatter() money.Formatter {
	return e.cfg.Formatter
}

// Config returns the editor configuration
func (e *Editor) Config() EditorConfig {
	return e.cfg
}

// Record serializes the document
func (e *Editor) Record() domain.Record {
	return domain.Serialize(e.inv)
}

// Load applies a record over the current document. Fields that fail to
// parse are skipped and reported; everything else is still loaded.
func (e *Editor) Load(rec domain.Record) error {
	err := e.inv.Apply(rec)
	e.dirty = true
	e.recompute()
	e.repaginate()
	if e.mode == domain.ModeView {
		e.refreshView()
	}
	if err != nil {
		e.logger.Warn("record loaded with errors", zap.Error(err))
	}
	return err
}

// Repaginate rebuilds the pages. Capacity is fixed, so a resize changes nothing.
func (e *Editor) Repaginate() {
	e.repaginate()
	if e.mode == domain.ModeView {
		e.refreshView()
	}
}

// DraftID returns the ID of the saved draft backing the document, if any
func (e *Editor) DraftID() string {
	return e.draftID
}

// SetDraftID records which saved draft the document belongs to
func (e *Editor) SetDraftID(id string) {
	e.draftID = id
}

// Dirty reports whether the document changed since it was last saved or opened
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkSaved records that the document now matches its saved draft
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// mutate runs one edit as a single step: mutate, recompute, repaginate when
// the row list changed, then refresh the view text if it is visible.
func (e *Editor) mutate(field Field, structural bool, fn func(*domain.Invoice) error) error {
	if !e.IsMutable(field) {
		return ErrReadOnly
	}
	if err := fn(e.inv); err != nil {
		return err
	}
	e.dirty = true

	e.recompute()
	if structural {
		e.repaginate()
	}
	if e.mode == domain.ModeView {
		e.refreshView()
	}
	return nil
}

func (e *Editor) mutateItem(field Field, id int, fn func(*domain.LineItem)) error {
	return e.mutate(field, false, func(inv *domain.Invoice) error {
		item, err := inv.Item(id)
		if err != nil {
			return err
		}
		fn(item)
		return nil
	})
}

func (e *Editor) recompute() {
	e.totals = e.inv.Recompute()
	e.logger.Debug("recomputed totals",
		zap.Int("items", len(e.inv.Items)),
		zap.String("subtotal", e.totals.Subtotal.String()),
		zap.String("tax", e.totals.TaxAmount.String()),
		zap.String("total", e.totals.Total.String()),
		zap.String("balance_due", e.totals.BalanceDue.String()),
	)
}

func (e *Editor) repaginate() {
	e.pages = domain.Repaginate(e.inv.Items, e.cfg.ItemsPerPage)
	e.logger.Debug("repaginated", zap.Int("pages", len(e.pages)))
}

func (e *Editor) refreshView() {
	e.sheet = view.Build(e.inv, e.totals, e.pages, e.cfg.Formatter, e.ViewDefaults())
}

// ViewDefaults returns the display fallbacks
func (e *Editor) ViewDefaults() view.Defaults {
	return view.Defaults{Number: e.cfg.DefaultNumber, TaxLabel: e.cfg.TaxLabel}
}
