package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board screen bindings. It doubles as the help.KeyMap
// rendered in the footer.
type keyMap struct {
	PrevColumn      key.Binding
	NextColumn      key.Binding
	NextCard        key.Binding
	PrevCard        key.Binding
	SwapColumnLeft  key.Binding
	SwapColumnRight key.Binding
	MoveCardLeft    key.Binding
	MoveCardRight   key.Binding
	SwapCardDown    key.Binding
	SwapCardUp      key.Binding
	EditCard        key.Binding
	EditColumn      key.Binding
	NewCard         key.Binding
	NewColumn       key.Binding
	DeleteCard      key.Binding
	DeleteColumn    key.Binding
	Detail          key.Binding
	Copy            key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevColumn:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev column")),
		NextColumn:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next column")),
		NextCard:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next card")),
		PrevCard:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev card")),
		SwapColumnLeft:  key.NewBinding(key.WithKeys("ctrl+h", "ctrl+left"), key.WithHelp("ctrl+h", "swap column left")),
		SwapColumnRight: key.NewBinding(key.WithKeys("ctrl+l", "ctrl+right"), key.WithHelp("ctrl+l", "swap column right")),
		MoveCardLeft:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "move card left")),
		MoveCardRight:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "move card right")),
		SwapCardDown:    key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "swap card down")),
		SwapCardUp:      key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "swap card up")),
		EditCard:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit card")),
		EditColumn:      key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit column")),
		NewCard:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new card")),
		NewColumn:       key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "new column")),
		DeleteCard:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
		DeleteColumn:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete column")),
		Detail:          key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view card")),
		Copy:            key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewCard, k.EditCard, k.DeleteCard, k.MoveCardRight, k.Detail, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.NextCard, k.PrevCard},
		{k.SwapColumnLeft, k.SwapColumnRight, k.SwapCardDown, k.SwapCardUp},
		{k.MoveCardLeft, k.MoveCardRight, k.Detail, k.Copy},
		{k.NewCard, k.EditCard, k.DeleteCard},
		{k.NewColumn, k.EditColumn, k.DeleteColumn},
		{k.Help, k.Quit},
	}
}
