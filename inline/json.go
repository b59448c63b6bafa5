// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"
	"io"

	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
)

// Output is the structured shape of an inline run.
type Output struct {
	// VideoID identifies the queried video.
	VideoID string `json:"videoId"`
	// Title is the video title from the manifest.
	Title string `json:"title"`
	// Count is the number of streams in the result.
	Count int `json:"count"`
	// Streams is the query result, in result order.
	Streams []*stream.Stream `json:"streams"`
}

func writeJson(out io.Writer, m *manifest.Manifest, streams []*stream.Stream) error {
	if streams == nil {
		streams = []*stream.Stream{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(&Output{
		VideoID: m.VideoID,
		Title:   m.Title,
		Count:   len(streams),
		Streams: streams,
	})
}
