// Package style provides a functional API for composing and applying lipgloss-based styles.
package style

import "github.com/charmbracelet/lipgloss"

// Strawberry theme.
var (
	Base    = lipgloss.Color("#2b1b24")
	Text    = lipgloss.Color("#fde8ef")
	Subtext = lipgloss.Color("#d9b3c2")
	Overlay = lipgloss.Color("#8c6877")
	Surface = lipgloss.Color("#4a2f3c")

	Strawberry = lipgloss.Color("#ff4fa1")
	Mint       = lipgloss.Color("#89f8a5")
	Lemon      = lipgloss.Color("#ffe07a")
	Sky        = lipgloss.Color("#8fd3ff")
	Grape      = lipgloss.Color("#c9a2ff")

	AccentColor  = Strawberry
	SuccessColor = Mint
	ErrorColor   = lipgloss.Color("#ff6b6b")
	FaintColor   = Overlay
	HiRed        = ErrorColor
)
