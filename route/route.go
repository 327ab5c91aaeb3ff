// Package route decides which feature a page activates.
package route

import "strings"

// Page is a feature page. At most one is active per page load.
type Page int

const (
	None Page = iota
	Palette
	Grid
	Pressure
)

func (p Page) String() string {
	switch p {
	case Palette:
		return "palette"
	case Grid:
		return "grid"
	case Pressure:
		return "pressure"
	default:
		return "none"
	}
}

// Pages lists every feature page.
func Pages() []Page {
	return []Page{Palette, Grid, Pressure}
}

// Detect maps a location path to its page. The checks run in order and the first match wins,
// so "/palette-grid" is a palette page.
func Detect(path string) Page {
	switch {
	case strings.Contains(path, "palette"):
		return Palette
	case strings.Contains(path, "grid"):
		return Grid
	case strings.Contains(path, "pressure"):
		return Pressure
	default:
		return None
	}
}
