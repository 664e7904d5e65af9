// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// Form bindings apply while the registration form has focus.
var Form = struct {
	Next      key.Binding
	Prev      key.Binding
	RoleNext  key.Binding
	RolePrev  key.Binding
	Submit    key.Binding
	Reset     key.Binding
	FocusList key.Binding
	Activate  key.Binding
}{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	RoleNext: key.NewBinding(
		key.WithKeys("right", "ctrl+n"),
		key.WithHelp("→", "next role"),
	),
	RolePrev: key.NewBinding(
		key.WithKeys("left", "ctrl+p"),
		key.WithHelp("←", "previous role"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "clear form"),
	),
	FocusList: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "go to list"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next / submit"),
	),
}

// List bindings apply while the registration list has focus.
var List = struct {
	Up        key.Binding
	Down      key.Binding
	Delete    key.Binding
	Filter    key.Binding
	FocusForm key.Binding
	Help      key.Binding
	Quit      key.Binding
}{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter by role"),
	),
	FocusForm: key.NewBinding(
		key.WithKeys("a", "i"),
		key.WithHelp("a", "add registration"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// ForceQuit works from every screen.
var ForceQuit = key.NewBinding(
	key.WithKeys("ctrl+c"),
	key.WithHelp("ctrl+c", "quit"),
)

// FormHelp adapts the form bindings to bubbles/help.
type FormHelp struct{}

func (FormHelp) ShortHelp() []key.Binding {
	return []key.Binding{Form.Next, Form.RoleNext, Form.Submit, Form.FocusList, ForceQuit}
}

func (FormHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Form.Next, Form.Prev, Form.Activate},
		{Form.RoleNext, Form.RolePrev},
		{Form.Submit, Form.Reset, Form.FocusList, ForceQuit},
	}
}

// ListHelp adapts the list bindings to bubbles/help.
type ListHelp struct{}

func (ListHelp) ShortHelp() []key.Binding {
	return []key.Binding{List.Down, List.Delete, List.Filter, List.FocusForm, List.Help, List.Quit}
}

func (ListHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{List.Up, List.Down},
		{List.Delete, List.Filter, List.FocusForm},
		{List.Help, List.Quit, ForceQuit},
	}
}
