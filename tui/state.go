package tui

import "github.com/colorcarnival/carnival/route"

type state int

const (
	errorState state = iota
	palettesState
	colorsState
	nameInputState
	confirmState
	gridState
	pressureState
	authState
)

// pageState is the state a feature page opens in.
func pageState(p route.Page) state {
	switch p {
	case route.Grid:
		return gridState
	case route.Pressure:
		return pressureState
	default:
		return palettesState
	}
}

// page returns the feature page s belongs to.
func (s state) page() route.Page {
	switch s {
	case palettesState, colorsState, nameInputState, confirmState:
		return route.Palette
	case gridState:
		return route.Grid
	case pressureState:
		return route.Pressure
	default:
		return route.None
	}
}

// typing reports whether s routes printable keys to a text input.
func (s state) typing() bool {
	switch s {
	case nameInputState, gridState, pressureState, authState:
		return true
	default:
		return false
	}
}
