// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Color service connection.
const (
	APIBaseURL = "api.base_url"
	APITimeout = "api.timeout"
)

// Session persistence.
const (
	SessionKeyring = "session.keyring"
)

// Grid analysis.
const (
	GridCellWidth = "grid.cell_width"
)

// Terminal User Interface (TUI).
const (
	TUIPage = "tui.page"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
