package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Editor   key.Binding
	Drafts   key.Binding
	Settings key.Binding

	// Actions
	Select key.Binding
	New    key.Binding
	Delete key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Editor:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editor")),
	Drafts:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "drafts")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
	Right:    key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
}

// EditorKeyMap holds the document shortcuts. They work in both modes, so
// they all use a modifier to stay clear of text entry.
type EditorKeyMap struct {
	ToggleMode     key.Binding
	Print          key.Binding
	Export         key.Binding
	Save           key.Binding
	AddRow         key.Binding
	RemoveRow      key.Binding
	ToggleTax      key.Binding
	Signature      key.Binding
	ClearSignature key.Binding
	NextField      key.Binding
	PrevField      key.Binding
}

var EditorKeys = EditorKeyMap{
	ToggleMode:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit/view")),
	Print:          key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "print")),
	Export:         key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "pdf")),
	Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	AddRow:         key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add row")),
	RemoveRow:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove row")),
	ToggleTax:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tax on/off")),
	Signature:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "signature")),
	ClearSignature: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear signature")),
	NextField:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
}
