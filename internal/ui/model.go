// Package ui renders the alert box and the login-status indicator inside the terminal interface.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/session"
	"github.com/colorcarnival/carnival/style"
)

// AlertMsg carries an alert box change into the bubbletea loop.
type AlertMsg struct {
	Alert   alert.Alert
	Visible bool
}

// StatusMsg carries a session change into the bubbletea loop.
type StatusMsg session.Status

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards alert box and session changes to s and returns a function that stops forwarding.
// Timers of the box run on their own goroutines, so hides arrive as messages too.
func Bridge(s Sender, box *alert.Box, sess *session.Session) (stop func()) {
	sess.OnChange(func(status session.Status) {
		s.Send(StatusMsg(status))
	})
	return box.Subscribe(func(a alert.Alert, visible bool) {
		s.Send(AlertMsg{Alert: a, Visible: visible})
	})
}

// Model holds what the notifier shows.
type Model struct {
	alert   alert.Alert
	visible bool
	status  session.Status
}

// NewModel starts from the current state of box and sess.
func NewModel(box *alert.Box, sess *session.Session) *Model {
	current, visible := box.Current()
	return &Model{alert: current, visible: visible, status: sess.Status()}
}

// Update applies bridged messages. It reports whether msg was one of them.
func (m *Model) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case AlertMsg:
		// a hide of an older alert arriving late never hides a newer one
		if msg.Alert.Seq < m.alert.Seq {
			return true
		}
		m.alert = msg.Alert
		m.visible = msg.Visible
		return true
	case StatusMsg:
		m.status = session.Status(msg)
		return true
	}
	return false
}

// Visible reports whether an alert is displayed.
func (m *Model) Visible() bool {
	return m.visible
}

// Status is the indicator label.
func (m *Model) Status() string {
	return m.status.Text()
}

// Header renders the login-status indicator.
func (m *Model) Header() string {
	if m.status.SignedIn() {
		return style.Fg(style.Mint)(m.status.Text())
	}
	return style.Faint(m.status.Text())
}

// View appends the alert banner below mainContent.
func (m *Model) View(mainContent string, width int) string {
	if !m.visible {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	return strings.Join(append(lines, alert.Render(m.alert, width)), "\n")
}
