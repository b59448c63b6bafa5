// Package manifest parses a video's available-formats manifest into stream
// descriptors and hands them to the query engine.
package manifest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/stream"
)

// Manifest aggregates a video's metadata and its retrievable stream variants.
type Manifest struct {
	VideoID       string           `json:"videoId"`
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	LengthSeconds int              `json:"lengthSeconds"`
	Streams       []*stream.Stream `json:"streams"`
}

// Query returns a query over the manifest's stream sequence, in manifest order.
func (m *Manifest) Query() *stream.Query {
	return stream.NewQuery(m.Streams)
}

// document is the raw manifest shape as served by format endpoints.
type document struct {
	VideoID       string   `json:"videoId"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	LengthSeconds string   `json:"lengthSeconds"`
	Formats       []format `json:"formats"`
}

// format is one raw entry of the manifest's formats array. MimeType carries
// the codecs parameter (e.g. `video/mp4; codecs="avc1.64001F, mp4a.40.2"`),
// ContentLength is served as a decimal string.
type format struct {
	Itag           int    `json:"itag"`
	MimeType       string `json:"mimeType"`
	QualityLabel   string `json:"qualityLabel"`
	FPS            int    `json:"fps"`
	Bitrate        int    `json:"bitrate"`
	AverageBitrate int    `json:"averageBitrate"`
	ContentLength  string `json:"contentLength"`
	URL            string `json:"url"`
}

var codecsRe = regexp.MustCompile(`codecs="([^"]*)"`)

// Parse decodes a manifest document and normalizes every format entry into
// a stream descriptor. Formats without an itag or MIME type are skipped.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	length, _ := strconv.Atoi(doc.LengthSeconds)

	m := &Manifest{
		VideoID:       doc.VideoID,
		Title:         doc.Title,
		Author:        doc.Author,
		LengthSeconds: length,
	}

	for _, f := range doc.Formats {
		if f.Itag == 0 || f.MimeType == "" {
			continue
		}
		m.Streams = append(m.Streams, f.toStream())
	}

	return m, nil
}

// Load reads and parses a manifest file through the virtualized filesystem.
func Load(path string) (*Manifest, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	return Parse(data)
}

// toStream normalizes a raw format entry. Track composition is derived from
// the codecs parameter: audio/* formats carry an audio track only, video/*
// formats with two codecs are progressive, with one codec video-only.
func (f format) toStream() *stream.Stream {
	mime, _, _ := strings.Cut(f.MimeType, ";")
	mime = strings.TrimSpace(mime)

	var codecs []string
	if match := codecsRe.FindStringSubmatch(f.MimeType); match != nil {
		for _, c := range strings.Split(match[1], ",") {
			codecs = append(codecs, strings.TrimSpace(c))
		}
	}

	bitrate := f.AverageBitrate
	if bitrate == 0 {
		bitrate = f.Bitrate
	}

	size, _ := strconv.ParseInt(f.ContentLength, 10, 64)

	s := &stream.Stream{
		Itag:       f.Itag,
		MimeType:   mime,
		Resolution: f.QualityLabel,
		FPS:        f.FPS,
		Bitrate:    bitrate,
		FileSize:   size,
		URL:        f.URL,
	}

	switch {
	case strings.HasPrefix(mime, "audio/"):
		s.IncludesAudioTrack = true
		if len(codecs) > 0 {
			s.AudioCodec = codecs[0]
		}
	default:
		s.IncludesVideoTrack = true
		if len(codecs) > 0 {
			s.VideoCodec = codecs[0]
		}
		if len(codecs) > 1 {
			s.AudioCodec = codecs[1]
			s.IncludesAudioTrack = true
		}
	}

	return s
}
