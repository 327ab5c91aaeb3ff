// Package icon renders UI symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/colorcarnival/carnival/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Progress
	Palette
	Grid
	Pressure
	User
)

type iconDef struct {
	emoji   string
	plain   string
	squares string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", plain: "+", squares: "▣"},
	Fail:     {emoji: "💔", plain: "x", squares: "▨"},
	Progress: {emoji: "⏳", plain: "~", squares: "▤"},
	Palette:  {emoji: "🎨", plain: "#", squares: "▦"},
	Grid:     {emoji: "🖼️", plain: "[]", squares: "▩"},
	Pressure: {emoji: "📈", plain: "%", squares: "▥"},
	User:     {emoji: "🧑‍🎨", plain: "@", squares: "▢"},
}

// Get returns the symbol for i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
