package config

import (
	"github.com/colorcarnival/carnival/key"
)

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func register(fields ...Field) {
	for _, f := range fields {
		if _, exists := Default[f.Key]; exists {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

func init() {
	register(
		Field{key.APIBaseURL, "http://localhost:5000", "Root URL of the color service.\nAll /api paths are resolved against it"},
		Field{key.APITimeout, 30, "Seconds a single command waits for the color service.\n0 waits forever"},
	)

	register(
		Field{key.SessionKeyring, true, "Keep the session token returned on sign in in the system keyring.\nWhen off it is written to the session store"},
	)

	register(
		Field{key.GridCellWidth, 2, "Terminal columns used to draw one grid cell"},
		Field{key.TUIPage, "palette", "Page opened by the interactive mode.\nAvailable options are: palette, grid, pressure"},
		Field{key.IconsVariant, "emoji", "Icons variant.\nAvailable options are: emoji, plain, squares"},
	)

	register(
		Field{key.LogsWrite, false, "Write logs to the logs directory"},
		Field{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
		Field{key.LogsJson, false, "Use json format for logs"},
	)

	register(
		Field{key.CliColored, true, "Enable colored CLI output"},
		Field{key.CliVersionCheck, true, "Check for a newer release when showing help or version"},
	)
}
