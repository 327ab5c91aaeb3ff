// Package constant defines immutable application-level identifiers and wire defaults.
package constant

const (
	// Carnival is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Carnival = "carnival"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent identifies the client to the color service.
	UserAgent = "carnival/" + Version
)

// Wire constants shared with the color service.
const (
	// GridSize is the number of cells per side requested from the analysis endpoint.
	GridSize = 40

	// GridRenderLimit caps how many returned cells are rendered; the remainder is discarded.
	GridRenderLimit = 300

	// PressureHighThreshold is the exclusive lower bound of the high-pressure bar color.
	PressureHighThreshold = 70.0
)

// Durable store keys. The names match the ones the web client writes so a shared store stays compatible.
const (
	StoreKeyTheme    = "cc_theme"
	StoreKeyUsername = "cc_username"
	StoreKeyUser     = "cc_user"
	StoreKeyToken    = "cc_token"
)
