package stream

import (
	"fmt"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// comparators maps sortable attribute names to their natural-order
// comparison functions. Numeric attributes sort numerically, string
// attributes lexicographically; resolution labels sort by pixel height.
var comparators = map[string]func(a, b *Stream) int{
	"itag":        func(a, b *Stream) int { return a.Itag - b.Itag },
	"fps":         func(a, b *Stream) int { return a.FPS - b.FPS },
	"bitrate":     func(a, b *Stream) int { return a.Bitrate - b.Bitrate },
	"abr":         func(a, b *Stream) int { return a.Bitrate - b.Bitrate },
	"filesize":    func(a, b *Stream) int { return int(a.FileSize - b.FileSize) },
	"resolution":  func(a, b *Stream) int { return resolutionHeight(a.Resolution) - resolutionHeight(b.Resolution) },
	"mime_type":   func(a, b *Stream) int { return strings.Compare(a.MimeType, b.MimeType) },
	"type":        func(a, b *Stream) int { return strings.Compare(a.Type(), b.Type()) },
	"subtype":     func(a, b *Stream) int { return strings.Compare(a.Subtype(), b.Subtype()) },
	"video_codec": func(a, b *Stream) int { return strings.Compare(a.VideoCodec, b.VideoCodec) },
	"audio_codec": func(a, b *Stream) int { return strings.Compare(a.AudioCodec, b.AudioCodec) },
}

// Attributes returns the sortable attribute names, sorted.
func Attributes() []string {
	names := lo.Keys(comparators)
	slices.Sort(names)
	return names
}

// resolutionHeight parses the numeric prefix of a quality label
// ("720p" -> 720, "1080p60" -> 1080). Audio-only streams have no label
// and sort first.
func resolutionHeight(label string) int {
	digits := label
	for i, r := range label {
		if r < '0' || r > '9' {
			digits = label[:i]
			break
		}
	}

	height, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return height
}

// UnknownAttributeError reports an OrderBy call with an attribute name
// outside the sortable set. Closest carries the nearest known name.
type UnknownAttributeError struct {
	Attribute string
	Closest   string
}

func (e *UnknownAttributeError) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("unknown stream attribute %q", e.Attribute)
	}
	return fmt.Sprintf("unknown stream attribute %q, did you mean %q?", e.Attribute, e.Closest)
}

func newUnknownAttributeError(attribute string) *UnknownAttributeError {
	closest := lo.MinBy(Attributes(), func(a, b string) bool {
		return levenshtein.Distance(attribute, a) < levenshtein.Distance(attribute, b)
	})

	return &UnknownAttributeError{Attribute: attribute, Closest: closest}
}
