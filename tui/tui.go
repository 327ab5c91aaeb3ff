// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/internal/ui"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/route"
	"github.com/colorcarnival/carnival/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Page is activated first. route.None selects the palette page.
	Page route.Page
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	sess := session.Default()
	sess.Load()

	bubble := newBubble(options, network.Default(), alert.Default(), sess)

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	stop := ui.Bridge(program, alert.Default(), sess)
	defer stop()

	_, err := program.Run()
	return err
}
