package domain

// Mode is the presentation state of the document
type Mode int

const (
	ModeView Mode = iota // read-only, formatted
	ModeEdit             // raw input fields
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeView:
		return "View"
	case ModeEdit:
		return "Edit"
	default:
		return "Unknown"
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeEdit {
		return ModeView
	}
	return ModeEdit
}
