package model

// Shared defaults used by the CLI and the TUI.
const (
	DefaultSidebarWidth  = 24
	DefaultMarkdownStyle = "dark"
)

// DefaultLogFileName is created under the config directory.
const DefaultLogFileName = "sectionnav.log"
