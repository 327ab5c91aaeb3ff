package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/colorcarnival/carnival/grid"
	"github.com/colorcarnival/carnival/icon"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/pressure"
	"github.com/colorcarnival/carnival/style"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case palettesState, colorsState:
		output = b.viewPalettes()
	case nameInputState:
		output = b.viewNameInput()
	case confirmState:
		output = b.viewConfirm()
	case gridState:
		output = b.viewGrid()
	case pressureState:
		output = b.viewPressure()
	case authState:
		output = b.viewAuth()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output, b.width)
}

func (b *statefulBubble) header(title string) string {
	status := b.notifier.Header()
	if b.loading() {
		status = b.spinnerC.View() + " " + status
	}
	return style.Title(title) + "  " + status
}

func (b *statefulBubble) viewPalettes() string {
	snapshot := b.palettes.Snapshot()

	var body string
	if snapshot.Placeholder {
		body = paddingStyle.Render(style.Faint(palette.Placeholder))
	} else {
		body = listExtraPaddingStyle.Render(b.palettesC.View())
		if len(b.colorsC.Items()) > 0 {
			body += "\n" + listExtraPaddingStyle.Render(b.colorsC.View())
		}
	}

	return b.renderLines(true, []string{
		b.header(icon.Get(icon.Palette) + " Palettes"),
		body,
	})
}

func (b *statefulBubble) viewNameInput() string {
	return b.renderLines(true, []string{
		b.header("New Palette"),
		"",
		b.nameC.View(),
	})
}

func (b *statefulBubble) viewConfirm() string {
	name := ""
	if option, ok := b.selectedOption(); ok {
		name = option.Name
	}
	return b.renderLines(true, []string{
		b.header("Delete Palette"),
		"",
		"Delete this palette?",
		style.Fg(style.Strawberry)(name),
	})
}

func (b *statefulBubble) viewGrid() string {
	lines := []string{
		b.header(icon.Get(icon.Grid) + " Grid"),
		"",
		b.pathC.View(),
		"",
	}

	if result := b.analyzer.Result(); result != nil {
		lines = append(lines,
			style.Faint(fmt.Sprintf("%d squares", result.Count)),
			grid.Render(result.Cells, viper.GetInt(key.GridCellWidth), b.width),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPressure() string {
	lines := []string{
		b.header(icon.Get(icon.Pressure) + " Pressure"),
		"",
		b.targetC.View(),
		b.actualC.View(),
		"",
	}

	if result := b.calculator.Result(); result != nil {
		lines = append(lines,
			fmt.Sprintf("%s %s", style.Faint("Saturation difference:"), result.SaturationText()),
			fmt.Sprintf("%s %s", style.Faint("Pressure:"), style.Fg(result.BarColor())(result.PressureText())),
			pressure.Bar(*result, b.width),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewAuth() string {
	mode := b.authFlow.Mode()
	return b.renderLines(true, []string{
		b.header(icon.Get(icon.User) + " " + mode.Title()),
		"",
		b.usernameC.View(),
		b.passwordC.View(),
		"",
		style.Faint(mode.ToggleLabel() + " (ctrl+t)"),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	message := ""
	if b.lastError != nil {
		message = b.lastError.Error()
	}
	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " An error occurred:",
		"",
		wrap.String(errorStyle.Render(message), b.width),
	})
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
