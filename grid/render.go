package grid

import (
	"strings"

	"github.com/colorcarnival/carnival/style"
	"github.com/colorcarnival/carnival/util"
)

// Render draws cells as blocks of cellWidth columns, wrapped to width columns.
func Render(cells []Cell, cellWidth, width int) string {
	cellWidth = util.Max(cellWidth, 1)
	perRow := util.Max(width/cellWidth, 1)

	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%perRow == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(style.Swatch(c.Hex, cellWidth))
	}
	return b.String()
}
