package tui

import "github.com/charmbracelet/bubbles/key"

// inputKeyMap defines key bindings while the topic input is focused
type inputKeyMap struct {
	Generate key.Binding
	Tags     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Tags, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Generate, k.Tags, k.Quit}}
}

// tagsKeyMap defines key bindings while the tag cloud is focused
type tagsKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Remove key.Binding
	Copy   key.Binding
	Save   key.Binding
	Edit   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k tagsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Remove, k.Copy, k.Save, k.Edit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k tagsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Remove, k.Copy, k.Save},
		{k.Edit, k.Quit},
	}
}

func newInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		Tags: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "tags"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func newTagsKeyMap() tagsKeyMap {
	return tagsKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "up", "k"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "down", "j"),
			key.WithHelp("→/l", "next"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "remove"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy all"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save csv"),
		),
		Edit: key.NewBinding(
			key.WithKeys("tab", "/", "i"),
			key.WithHelp("tab", "edit topic"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
