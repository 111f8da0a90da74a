package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/andy/invoicedesk/internal/money"
)

// Record is the serialized document. Values are kept in their raw form
// (rate as entered, not the formatted currency text).
type Record struct {
	InvoiceNumber  string       `json:"invoiceNumber,omitempty"`
	InvoiceDate    string       `json:"invoiceDate,omitempty"`
	DueDate        string       `json:"dueDate,omitempty"`
	ClientName     string       `json:"clientName,omitempty"`
	ClientAddress  string       `json:"clientAddress,omitempty"`
	ClientContact  string       `json:"clientContact,omitempty"`
	ReceivedAmount string       `json:"receivedAmount,omitempty"`
	SignatureImage string       `json:"signatureImage,omitempty"`
	TaxEnabled     *bool        `json:"gstEnabled,omitempty"`
	TaxRate        *json.Number `json:"gstPercentage,omitempty"`
	Items          []ItemRecord `json:"items,omitempty"`
}

// ItemRecord is one serialized row
type ItemRecord struct {
	Description string `json:"description"`
	Rate        string `json:"rate"`
	Qty         string `json:"qty"`
}

// Serialize captures every field of the invoice
func Serialize(inv *Invoice) Record {
	taxEnabled := inv.TaxEnabled
	taxRate := json.Number(inv.TaxRate.String())

	rec := Record{
		InvoiceNumber:  inv.Number,
		ClientName:     inv.Client.Name,
		ClientAddress:  inv.Client.Address,
		ClientContact:  inv.Client.Contact,
		ReceivedAmount: inv.ReceivedAmount.String(),
		TaxEnabled:     &taxEnabled,
		TaxRate:        &taxRate,
		Items:          make([]ItemRecord, 0, len(inv.Items)),
	}
	if inv.IssueDate != nil {
		rec.InvoiceDate = inv.IssueDate.Format(DateLayout)
	}
	if inv.DueDate != nil {
		rec.DueDate = inv.DueDate.Format(DateLayout)
	}
	if inv.Signature != nil {
		rec.SignatureImage = inv.Signature.DataURL()
	}
	for _, item := range inv.Items {
		rec.Items = append(rec.Items, ItemRecord{
			Description: item.Description,
			Rate:        item.Rate.String(),
			Qty:         strconv.Itoa(item.Quantity),
		})
	}
	return rec
}

// Apply loads a record into the invoice. Scalar fields missing from the
// record keep their current values. The item list is replaced wholesale
// when the record carries at least one item. Fields that fail to parse are
// skipped and reported together; everything else is still applied.
func (inv *Invoice) Apply(rec Record) error {
	var errs []error

	if rec.InvoiceNumber != "" {
		inv.Number = rec.InvoiceNumber
	}
	if rec.InvoiceDate != "" {
		if err := inv.SetIssueDate(rec.InvoiceDate); err != nil {
			errs = append(errs, fmt.Errorf("invoiceDate: %w", err))
		}
	}
	if rec.DueDate != "" {
		if err := inv.SetDueDate(rec.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("dueDate: %w", err))
		}
	}
	if rec.ClientName != "" {
		inv.Client.Name = rec.ClientName
	}
	if rec.ClientAddress != "" {
		inv.Client.Address = rec.ClientAddress
	}
	if rec.ClientContact != "" {
		inv.Client.Contact = rec.ClientContact
	}
	if rec.ReceivedAmount != "" {
		inv.ReceivedAmount = money.ParseAmount(rec.ReceivedAmount)
	}

	if rec.TaxEnabled != nil {
		inv.TaxEnabled = *rec.TaxEnabled
	}
	if rec.TaxRate != nil {
		inv.TaxRate = money.ParseAmount(rec.TaxRate.String())
	}

	if rec.SignatureImage != "" {
		sig, err := ParseDataURL(rec.SignatureImage)
		if err != nil {
			errs = append(errs, fmt.Errorf("signatureImage: %w", err))
		} else {
			inv.Signature = sig
		}
	}

	if len(rec.Items) > 0 {
		inv.ReplaceItems(rec.Items)
	}

	return errors.Join(errs...)
}
