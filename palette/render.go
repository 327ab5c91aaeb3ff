package palette

import (
	"fmt"
	"strings"

	"github.com/colorcarnival/carnival/style"
)

// RenderColor draws one color row: swatch, name, hex and channels.
func RenderColor(c Color, swatchWidth int) string {
	return fmt.Sprintf("%s %s %s %s",
		style.Swatch(c.Hex, swatchWidth),
		style.Bold(c.Name),
		c.Hex,
		style.Faint(c.RGBText()),
	)
}

// RenderColors draws every row of colors, one per line.
func RenderColors(colors []Color, swatchWidth int) string {
	var b strings.Builder
	for i, c := range colors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(RenderColor(c, swatchWidth))
	}
	return b.String()
}
