// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Build metadata, overridable at link time via -ldflags.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
