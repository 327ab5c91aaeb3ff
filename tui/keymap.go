package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, back,
	create, remove, colors, reload,
	yes, no,
	nextPage, signIn, signOut, toggleMode,
	nextInput, prevInput,
	up, down, top, bottom,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new palette"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp(style.Fg(color.Red)("d"), style.Fg(color.Red)("delete")),
		),
		colors: key.NewBinding(
			key.WithKeys("c", "right", "l"),
			key.WithHelp("c", "colors"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next page"),
		),
		signIn: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "sign in"),
		),
		signOut: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "log out"),
		),
		toggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "switch sign in / register"),
		),
		nextInput: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		prevInput: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case palettesState:
		return h(k.confirm, k.create, k.remove, k.colors, k.nextPage),
			h(k.confirm, k.create, k.remove, k.colors, k.reload, k.nextPage, k.signIn, k.signOut, k.quit)
	case colorsState:
		return to2(h(k.remove, k.back, k.nextPage))
	case nameInputState:
		return to2(h(withDescription(k.confirm, "save"), k.back))
	case confirmState:
		return to2(h(k.yes, k.no))
	case gridState:
		return h(withDescription(k.confirm, "analyze"), k.nextPage, k.forceQuit),
			h(withDescription(k.confirm, "analyze"), k.nextPage, k.signIn, k.signOut, k.forceQuit)
	case pressureState:
		return h(withDescription(k.confirm, "compute"), k.nextInput, k.nextPage, k.forceQuit),
			h(withDescription(k.confirm, "compute"), k.nextInput, k.prevInput, k.nextPage, k.signIn, k.signOut, k.forceQuit)
	case authState:
		return to2(h(withDescription(k.confirm, "submit"), k.nextInput, k.toggleMode, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
