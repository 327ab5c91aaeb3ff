package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/colorcarnival/carnival/route"
	"github.com/samber/lo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.notifier.Update(msg) {
		return b, nil
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case paletteSyncedMsg:
		b.stopLoading()
		cmd := b.syncPalettes()
		if b.state == confirmState {
			b.previousState()
		}
		if b.state == colorsState && len(b.colorsC.Items()) == 0 {
			b.previousState()
		}
		return b, cmd
	case paletteSavedMsg:
		b.stopLoading()
		cmd := b.syncPalettes()
		if msg.saved {
			b.nameC.SetValue("")
			if b.state == nameInputState {
				b.previousState()
				b.focusInputs()
			}
		}
		return b, cmd
	case gridDoneMsg, pressureDoneMsg:
		b.stopLoading()
		return b, nil
	case authDoneMsg:
		b.stopLoading()
		if msg.done {
			b.usernameC.SetValue("")
			b.passwordC.SetValue("")
			if b.state == authState {
				b.previousState()
				b.focusInputs()
			}
		}
		return b, nil
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.nextPage) && b.state != authState:
			return b, b.nextPage()
		case bubblesKey.Matches(msg, b.keymap.signIn) && b.state != authState:
			b.focusIndex = 0
			b.newState(authState)
			b.focusInputs()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.signOut):
			return b, b.logout()
		case !b.state.typing() && bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	switch b.state {
	case palettesState:
		return b.updatePalettes(msg)
	case colorsState:
		return b.updateColors(msg)
	case nameInputState:
		return b.updateNameInput(msg)
	case confirmState:
		return b.updateConfirm(msg)
	case gridState:
		return b.updateGrid(msg)
	case pressureState:
		return b.updatePressure(msg)
	case authState:
		return b.updateAuth(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// nextPage activates the feature page after the current one.
func (b *statefulBubble) nextPage() tea.Cmd {
	pages := route.Pages()
	_, index, _ := lo.FindIndexOf(pages, func(p route.Page) bool { return p == b.state.page() })
	next := pages[(index+1)%len(pages)]

	b.focusIndex = 0
	b.openPage(next)
	if next == route.Palette {
		return b.loadPalettes(noSelection)
	}
	return textinput.Blink
}

func (b *statefulBubble) updatePalettes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if option, ok := b.selectedOption(); ok {
				return b, b.selectPalette(option.ID)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.create):
			b.newState(nameInputState)
			b.focusInputs()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.palettes.Snapshot().Selected.IsAbsent() {
				// no selection: the synchronizer alerts without asking
				return b, b.deletePalette()
			}
			b.newState(confirmState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.colors):
			if len(b.colorsC.Items()) > 0 {
				b.newState(colorsState)
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.reload):
			return b, b.loadPalettes(noSelection)
		}
	}

	b.palettesC, cmd = b.palettesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateColors(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.remove):
			selected, ok := b.palettes.Snapshot().Selected.Get()
			c, hasColor := b.selectedColor()
			if !ok || !hasColor {
				return b, nil
			}
			return b, b.deleteColor(selected, c.ID)
		}
	}

	b.colorsC, cmd = b.colorsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateNameInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			b.focusInputs()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.createPalette(b.nameC.Value())
		}
	}

	b.nameC, cmd = b.nameC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.yes):
			return b, b.deletePalette()
		case bubblesKey.Matches(msg, b.keymap.no):
			b.previousState()
		}
	}
	return b, nil
}

func (b *statefulBubble) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		return b, b.analyze(strings.TrimSpace(b.pathC.Value()))
	}

	b.pathC, cmd = b.pathC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePressure(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.compute(b.targetC.Value(), b.actualC.Value())
		case bubblesKey.Matches(msg, b.keymap.nextInput):
			b.cycleFocus(1)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.prevInput):
			b.cycleFocus(-1)
			return b, nil
		}
	}

	if b.focusIndex == 0 {
		b.targetC, cmd = b.targetC.Update(msg)
	} else {
		b.actualC, cmd = b.actualC.Update(msg)
	}
	return b, cmd
}

func (b *statefulBubble) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			b.focusInputs()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.toggleMode):
			b.authFlow.Toggle()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.submitAuth(b.usernameC.Value(), b.passwordC.Value())
		case bubblesKey.Matches(msg, b.keymap.nextInput):
			b.cycleFocus(1)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.prevInput):
			b.cycleFocus(-1)
			return b, nil
		}
	}

	if b.focusIndex == 0 {
		b.usernameC, cmd = b.usernameC.Update(msg)
	} else {
		b.passwordC, cmd = b.passwordC.Update(msg)
	}
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.back) {
		b.lastError = nil
		if b.statesHistory.Len() > 0 {
			b.previousState()
		} else {
			b.openPage(route.Palette)
		}
		b.focusInputs()
	}
	return b, nil
}
