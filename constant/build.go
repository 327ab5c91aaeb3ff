package constant

// Build metadata, set with -ldflags "-X" at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Repository is the GitHub path releases are published under.
const Repository = "colorcarnival/carnival"
