package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/colorcarnival/carnival/grid"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/palette"
	"github.com/colorcarnival/carnival/pressure"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	paletteSyncedMsg struct{}
	paletteSavedMsg  struct{ saved bool }
	gridDoneMsg      struct{ result *grid.Result }
	pressureDoneMsg  struct{ result *pressure.Result }
	authDoneMsg      struct{ done bool }
)

// run executes op with a request context and logs failures that are not already surfaced.
// Feature failures reach the user through the alert box.
func run(name string, op func(ctx context.Context) error) {
	ctx, cancel := network.RequestContext(context.Background())
	defer cancel()

	if err := op(ctx); err != nil {
		if errors.Is(err, palette.ErrInFlight) || errors.Is(err, grid.ErrInFlight) || errors.Is(err, pressure.ErrInFlight) {
			return
		}
		log.Warnf("%s: %s", name, err)
	}
}

func (b *statefulBubble) loadPalettes(requested mo.Option[int]) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		run("load palettes", func(ctx context.Context) error {
			return b.palettes.Load(ctx, requested)
		})
		return paletteSyncedMsg{}
	}
}

func (b *statefulBubble) selectPalette(id int) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		run("select palette", func(ctx context.Context) error {
			return b.palettes.Select(ctx, id)
		})
		return paletteSyncedMsg{}
	}
}

func (b *statefulBubble) createPalette(name string) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		var saved bool
		run("create palette", func(ctx context.Context) (err error) {
			saved, err = b.palettes.Create(ctx, name)
			return err
		})
		return paletteSavedMsg{saved: saved}
	}
}

func (b *statefulBubble) deletePalette() tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		run("delete palette", b.palettes.Delete)
		return paletteSyncedMsg{}
	}
}

func (b *statefulBubble) deleteColor(paletteID, colorID int) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		run("delete color", func(ctx context.Context) error {
			return b.palettes.DeleteColor(ctx, paletteID, colorID)
		})
		return paletteSyncedMsg{}
	}
}

func (b *statefulBubble) analyze(path string) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		var result *grid.Result
		run("analyze image", func(ctx context.Context) (err error) {
			result, err = b.analyzer.Analyze(ctx, path)
			return err
		})
		return gridDoneMsg{result: result}
	}
}

func (b *statefulBubble) compute(target, actual string) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		var result *pressure.Result
		run("compute pressure", func(ctx context.Context) (err error) {
			result, err = b.calculator.Compute(ctx, target, actual)
			return err
		})
		return pressureDoneMsg{result: result}
	}
}

func (b *statefulBubble) submitAuth(username, password string) tea.Cmd {
	b.startLoading()
	return func() tea.Msg {
		var done bool
		run("submit credentials", func(ctx context.Context) (err error) {
			done, err = b.authFlow.Submit(ctx, username, password)
			return err
		})
		return authDoneMsg{done: done}
	}
}

func (b *statefulBubble) logout() tea.Cmd {
	return func() tea.Msg {
		if err := b.authFlow.Logout(); err != nil {
			return err
		}
		return nil
	}
}

// syncPalettes copies the synchronizer state into the lists.
func (b *statefulBubble) syncPalettes() tea.Cmd {
	snapshot := b.palettes.Snapshot()
	selected, hasSelection := snapshot.Selected.Get()

	items := lo.Map(snapshot.Options, func(o palette.Option, _ int) list.Item {
		return &listItem{internal: o, marked: hasSelection && o.ID == selected}
	})
	cmd := b.palettesC.SetItems(items)

	if hasSelection {
		if _, index, ok := lo.FindIndexOf(snapshot.Options, func(o palette.Option) bool { return o.ID == selected }); ok {
			b.palettesC.Select(index)
		}
	}

	colors := lo.Map(snapshot.Colors, func(c palette.Color, _ int) list.Item {
		return &listItem{internal: c}
	})
	return tea.Batch(cmd, b.colorsC.SetItems(colors))
}

func (b *statefulBubble) selectedOption() (palette.Option, bool) {
	item, ok := b.palettesC.SelectedItem().(*listItem)
	if !ok {
		return palette.Option{}, false
	}
	option, ok := item.internal.(palette.Option)
	return option, ok
}

func (b *statefulBubble) selectedColor() (palette.Color, bool) {
	item, ok := b.colorsC.SelectedItem().(*listItem)
	if !ok {
		return palette.Color{}, false
	}
	c, ok := item.internal.(palette.Color)
	return c, ok
}

var noSelection = mo.None[int]()
