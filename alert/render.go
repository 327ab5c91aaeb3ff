package alert

import (
	"fmt"
	"io"

	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/style"
	"github.com/muesli/reflow/wrap"
)

// Render draws a as a colored banner no wider than width columns (0 means unbounded).
func Render(a Alert, width int) string {
	bg := style.SuccessColor
	mark := icon.Get(icon.Success)
	if !a.Success {
		bg = style.ErrorColor
		mark = icon.Get(icon.Fail)
	}

	text := a.Message
	if mark != "" {
		text = mark + " " + text
	}

	banner := style.Colored(style.Base, bg).Bold(true).Padding(0, 1)
	if width > 0 {
		frame := banner.GetHorizontalFrameSize()
		if width > frame {
			text = wrap.String(text, width-frame)
		}
	}
	return banner.Render(text)
}

// Printer returns a listener writing every shown alert to w, one per line.
// Hides are not printed: a line on a terminal cannot be taken back.
func Printer(w io.Writer) Listener {
	return func(a Alert, visible bool) {
		if !visible {
			return
		}
		_, _ = fmt.Fprintln(w, Render(a, 0))
	}
}
