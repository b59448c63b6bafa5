// Package mini implements a lightweight, minimalist prompt for stream selection.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
	"github.com/vidq-cli/vidq/style"
	"github.com/vidq-cli/vidq/util"
)

// Options configures the minimal picker.
type Options struct {
	Manifest *manifest.Manifest
	Criteria stream.Filter
}

// Run prompts for a stream among the filtered manifest entries and returns
// the chosen one.
func Run(options *Options) (*stream.Stream, error) {
	q := options.Manifest.Query().Filter(options.Criteria)

	streams := q.All()
	if len(streams) == 0 {
		return nil, errors.New("no streams match the given criteria")
	}

	fmt.Println(style.Title(options.Manifest.Title))

	prompt := &survey.Select{
		Message: fmt.Sprintf("Select a stream (%s)", util.Quantify(len(streams), "variant", "variants")),
		Options: lo.Map(streams, func(s *stream.Stream, _ int) string {
			return describe(s)
		}),
		PageSize: 15,
	}

	var answer survey.OptionAnswer
	if err := survey.AskOne(prompt, &answer); err != nil {
		return nil, err
	}

	return streams[answer.Index], nil
}

// describe renders one selectable row.
func describe(s *stream.Stream) string {
	label := fmt.Sprintf("itag %-3d %-11s %-10s", s.Itag, s.MimeType, s.Label())

	switch {
	case s.IsProgressive():
		label += " progressive"
	case s.IncludesAudioTrack:
		label += " audio-only"
	default:
		label += " video-only"
	}

	if s.FileSize > 0 {
		label += fmt.Sprintf(" (%s)", util.HumanSize(s.FileSize))
	}

	return label
}
