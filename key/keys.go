// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Stream Selection - these keys set defaults for filtering and ordering stream formats.
const (
	SelectOrderBy     = "select.order_by"
	SelectProgressive = "select.progressive_only"
)

// Manifest Retrieval - these keys govern fetching and caching of format manifests.
const (
	ManifestCacheLifetime = "manifest.cache_lifetime"
	ManifestSpoofTLS      = "manifest.spoof_tls"
)

// Search Interaction - these keys define the UI/UX parameters for input suggestions.
const (
	SearchShowSuggestions = "search.show_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive browser's styling and logic.
const (
	TUIShowURLs = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
