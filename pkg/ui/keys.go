package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit        key.Binding
	Quit          key.Binding
	PrevProduct   key.Binding
	NextProduct   key.Binding
	PrevCarousel  key.Binding
	NextCarousel  key.Binding
	SelectProduct key.Binding
	Details       key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		PrevProduct: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "previous product"),
		),
		NextProduct: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "next product"),
		),
		PrevCarousel: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "older results"),
		),
		NextCarousel: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "newer results"),
		),
		SelectProduct: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1…9", "jump to product"),
		),
		Details:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "copy product link")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.PrevProduct, k.NextProduct, k.Details, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Quit},
		{k.PrevProduct, k.NextProduct, k.SelectProduct, k.Details},
		{k.PrevCarousel, k.NextCarousel, k.ScrollUp, k.ScrollDown},
	}
}
