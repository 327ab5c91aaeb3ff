package pressure

import (
	"github.com/charmbracelet/bubbles/progress"
)

// Bar renders the pressure bar of r, width columns wide.
func Bar(r Result, width int) string {
	bar := progress.New(
		progress.WithSolidFill(string(r.BarColor())),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(r.BarWidth() / 100)
}
