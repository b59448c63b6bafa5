// Package stream defines the media stream descriptor model and the immutable
// query engine used to narrow, sort and select streams.
package stream

import (
	"fmt"
	"strings"
)

// Stream describes one retrievable media variant of a video.
type Stream struct {
	// Itag is the unique format identifier code.
	Itag int `json:"itag"`
	// MimeType is the two-part format identifier (e.g. "video/mp4").
	MimeType string `json:"mimeType"`
	// Resolution is the video quality label (e.g. "720p"). Empty for audio-only streams.
	Resolution string `json:"resolution,omitempty"`
	// FPS is the frame rate. Zero for audio-only streams.
	FPS int `json:"fps,omitempty"`
	// Bitrate is the average bitrate in bits per second.
	Bitrate int `json:"bitrate"`
	// VideoCodec is the video compression format (e.g. "avc1.64001F", "vp9").
	VideoCodec string `json:"videoCodec,omitempty"`
	// AudioCodec is the audio compression format (e.g. "mp4a.40.2", "opus").
	AudioCodec string `json:"audioCodec,omitempty"`
	// Track composition flags.
	IncludesAudioTrack bool `json:"includesAudioTrack"`
	IncludesVideoTrack bool `json:"includesVideoTrack"`
	// FileSize is the content length in bytes, when known.
	FileSize int64 `json:"fileSize,omitempty"`
	// URL is the direct stream location.
	URL string `json:"url"`
}

// Type returns the major part of the MIME type (e.g. "video").
func (s *Stream) Type() string {
	t, _, _ := strings.Cut(s.MimeType, "/")
	return t
}

// Subtype returns the minor part of the MIME type (e.g. "mp4"),
// which doubles as the file extension.
func (s *Stream) Subtype() string {
	_, sub, _ := strings.Cut(s.MimeType, "/")
	return sub
}

// IsProgressive reports whether the stream carries both audio and video
// tracks in a single file.
func (s *Stream) IsProgressive() bool {
	return s.IncludesAudioTrack && s.IncludesVideoTrack
}

// IsAdaptive reports whether the stream carries exactly one of audio or
// video (tracks delivered separately).
func (s *Stream) IsAdaptive() bool {
	return s.IncludesAudioTrack != s.IncludesVideoTrack
}

// Label returns a short human-readable quality label.
func (s *Stream) Label() string {
	if s.Resolution != "" {
		if s.FPS > 0 {
			return fmt.Sprintf("%s@%d", s.Resolution, s.FPS)
		}
		return s.Resolution
	}
	if s.Bitrate > 0 {
		return fmt.Sprintf("%dkbps", s.Bitrate/1000)
	}
	return s.MimeType
}

func (s *Stream) String() string {
	return fmt.Sprintf("itag %d (%s %s)", s.Itag, s.MimeType, s.Label())
}
