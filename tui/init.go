package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the cursor blink and loads the palette list when the palette page is active.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, b.spinnerC.Tick}
	if b.state == palettesState {
		cmds = append(cmds, b.loadPalettes(noSelection))
	}
	return tea.Batch(cmds...)
}
