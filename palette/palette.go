// Package palette keeps the client view of the user's palettes consistent with the server.
//
// Every mutation is followed by a full re-fetch of the palette list; local state is never
// patched from a mutation response.
package palette

import (
	"fmt"
	"strconv"
)

// Placeholder is the selector label shown when there are no palettes.
const Placeholder = "— No palettes yet —"

// RGB holds the optional channels of a color. A nil channel was absent from the payload.
type RGB struct {
	R *int `json:"r,omitempty"`
	G *int `json:"g,omitempty"`
	B *int `json:"b,omitempty"`
}

// Color is one entry of a palette.
type Color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  *RGB   `json:"rgb,omitempty"`
}

// RGBText renders the channels as "rgb(r, g, b)", with "?" for an absent channel.
// A zero channel renders as 0.
func (c Color) RGBText() string {
	var r, g, b *int
	if c.RGB != nil {
		r, g, b = c.RGB.R, c.RGB.G, c.RGB.B
	}
	return fmt.Sprintf("rgb(%s, %s, %s)", channel(r), channel(g), channel(b))
}

func channel(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}

// Palette is a named, ordered collection of colors. The id is always server assigned.
type Palette struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Colors []Color `json:"colors"`
}

// Option is one selector entry.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
