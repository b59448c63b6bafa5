// Package tui provides the interactive terminal browser for stream formats.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Manifest *manifest.Manifest
	Criteria stream.Filter
}

// Run executes the browser loop and returns the stream the user confirmed,
// absent when they quit without selecting.
func Run(options *Options) (mo.Option[*stream.Stream], error) {
	streams := options.Manifest.Query().Filter(options.Criteria).All()
	b := newBubble(options.Manifest.Title, streams)

	if _, err := tea.NewProgram(b, tea.WithAltScreen()).Run(); err != nil {
		return mo.None[*stream.Stream](), err
	}

	if b.selected == nil {
		return mo.None[*stream.Stream](), nil
	}
	return mo.Some(b.selected), nil
}
