package tui

import (
	"fmt"

	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/style"
)

// listItem implements the list.Item interface for palettes and their colors.
type listItem struct {
	internal any
	marked   bool
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case palette.Option:
		if t.marked {
			return fmt.Sprintf("%s %s", e.Name, style.Fg(style.AccentColor)(icon.Get(icon.Palette)))
		}
		return e.Name
	case palette.Color:
		return fmt.Sprintf("%s %s", style.Swatch(e.Hex, 2), e.Name)
	default:
		return ""
	}
}

// Description retrieves the secondary display text for the list item.
func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case palette.Option:
		return style.Faint(fmt.Sprintf("#%d", e.ID))
	case palette.Color:
		return fmt.Sprintf("%s %s", e.Hex, style.Faint(e.RGBText()))
	default:
		return ""
	}
}

// FilterValue retrieves the string used for list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case palette.Option:
		return e.Name
	case palette.Color:
		return e.Name
	default:
		return ""
	}
}
