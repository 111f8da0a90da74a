package tui

import (
	"github.com/andy/invoicedesk/internal/domain"
	"github.com/andy/invoicedesk/internal/service"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// exportDoneMsg reports a finished export job. The job goes back to the
// event loop so Finish runs there.
type exportDoneMsg struct {
	job  *service.ExportJob
	path string
	err  error
}

// signatureReadMsg carries a signature file read off the event loop
type signatureReadMsg struct {
	path string
	sig  *domain.Signature
	err  error
}

type draftsDataMsg struct {
	drafts []*domain.Draft
	err    error
}

type configSavedMsg struct {
	err error
}
