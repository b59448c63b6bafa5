// Package tui provides the interactive terminal browser for stream formats.
package tui

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/icon"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/stream"
	"github.com/vidq-cli/vidq/style"
	"github.com/vidq-cli/vidq/util"
)

// listItem implements the list.Item interface, wrapping a stream descriptor for terminal display.
type listItem struct {
	stream *stream.Stream
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	return fmt.Sprintf(
		"%s itag %d %s %s",
		t.mark(),
		t.stream.Itag,
		t.stream.MimeType,
		style.Bold(t.stream.Label()),
	)
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() string {
	desc := composition(t.stream)

	if t.stream.FileSize > 0 {
		desc += " " + style.Faint(util.HumanSize(t.stream.FileSize))
	}

	if viper.GetBool(key.TUIShowURLs) && t.stream.URL != "" {
		desc += "\n" + style.Faint(icon.Get(icon.Link)+" "+t.stream.URL)
	}

	return desc
}

// FilterValue exposes the searchable text for fuzzy filtering.
func (t *listItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s %s", t.stream.Itag, t.stream.MimeType, t.stream.Resolution, composition(t.stream))
}

func (t *listItem) mark() string {
	switch {
	case t.stream.IsProgressive():
		return icon.Get(icon.Progressive)
	case t.stream.IncludesAudioTrack:
		return icon.Get(icon.Audio)
	default:
		return icon.Get(icon.Video)
	}
}

func composition(s *stream.Stream) string {
	switch {
	case s.IsProgressive():
		return "progressive"
	case s.IncludesAudioTrack:
		return "audio-only " + s.AudioCodec
	default:
		return "video-only " + s.VideoCodec
	}
}
