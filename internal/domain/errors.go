package domain

import "errors"

var (
	ErrLastItem         = errors.New("an invoice must keep at least one line item")
	ErrItemNotFound     = errors.New("line item not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidSignature = errors.New("invalid signature image")
)
