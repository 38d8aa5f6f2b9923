package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the popup.
type keyMap struct {
	Quit   key.Binding
	Tab1   key.Binding
	Tab2   key.Binding
	Tab3   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Reset  key.Binding
	Edit   key.Binding
	Copy   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tab1:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "cvss 3.1")),
		Tab2:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cvss 4.0")),
		Tab3:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "about")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select: key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "select")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit vector")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// helpFor returns the bindings shown in the footer.
func (k keyMap) helpFor(editing bool) []key.Binding {
	if editing {
		return []key.Binding{k.Save, k.Cancel}
	}
	return []key.Binding{k.Tab1, k.Tab2, k.Tab3, k.Up, k.Left, k.Select, k.Reset, k.Edit, k.Copy, k.Quit}
}
