package stream

import "github.com/samber/mo"

// Predicate decides whether a stream stays in a filtered result.
// Predicates must be pure with respect to the query's internal state.
type Predicate func(*Stream) bool

// Filter holds the recognized filtering criteria. Absent fields contribute
// no constraint. Res, FileExtension and ABR are aliases for Resolution,
// Subtype and Bitrate; when both ends of an alias pair are set, the primary
// name wins and exactly one predicate is contributed.
type Filter struct {
	// Resolution keeps streams whose quality label matches (e.g. "720p").
	Resolution mo.Option[string]
	// Res is an alias for Resolution.
	Res mo.Option[string]
	// FPS keeps streams with the given frame rate.
	FPS mo.Option[int]
	// MimeType keeps streams with the given two-part MIME type.
	MimeType mo.Option[string]
	// Type keeps streams whose MIME major type matches (e.g. "audio").
	Type mo.Option[string]
	// Subtype keeps streams whose MIME subtype matches (e.g. "mp4").
	Subtype mo.Option[string]
	// FileExtension is an alias for Subtype.
	FileExtension mo.Option[string]
	// Bitrate keeps streams with the given average bitrate.
	Bitrate mo.Option[int]
	// ABR is an alias for Bitrate.
	ABR mo.Option[int]
	// VideoCodec keeps streams with the given video compression format.
	VideoCodec mo.Option[string]
	// AudioCodec keeps streams with the given audio compression format.
	AudioCodec mo.Option[string]

	// OnlyAudio keeps streams with an audio track and no video track.
	OnlyAudio bool
	// OnlyVideo keeps streams with a video track and no audio track.
	OnlyVideo bool
	// Progressive keeps streams carrying both tracks in one file.
	Progressive bool
	// Adaptive keeps streams carrying audio and video separately.
	Adaptive bool

	// CustomPredicates are additionally ANDed in, in order.
	CustomPredicates []Predicate
}

// coalesce resolves an alias pair, preferring the primary name.
func coalesce[T any](primary, alias mo.Option[T]) mo.Option[T] {
	if primary.IsPresent() {
		return primary
	}
	return alias
}

// predicates normalizes the criteria into the ordered predicate set whose
// conjunction defines the filtered result.
func (f Filter) predicates() []Predicate {
	var preds []Predicate

	if res, ok := coalesce(f.Resolution, f.Res).Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.Resolution == res })
	}

	if fps, ok := f.FPS.Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.FPS == fps })
	}

	if mime, ok := f.MimeType.Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.MimeType == mime })
	}

	if typ, ok := f.Type.Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.Type() == typ })
	}

	if sub, ok := coalesce(f.Subtype, f.FileExtension).Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.Subtype() == sub })
	}

	if rate, ok := coalesce(f.Bitrate, f.ABR).Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.Bitrate == rate })
	}

	if codec, ok := f.VideoCodec.Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.VideoCodec == codec })
	}

	if codec, ok := f.AudioCodec.Get(); ok {
		preds = append(preds, func(s *Stream) bool { return s.AudioCodec == codec })
	}

	if f.OnlyAudio {
		preds = append(preds, func(s *Stream) bool {
			return s.IncludesAudioTrack && !s.IncludesVideoTrack
		})
	}

	if f.OnlyVideo {
		preds = append(preds, func(s *Stream) bool {
			return s.IncludesVideoTrack && !s.IncludesAudioTrack
		})
	}

	if f.Progressive {
		preds = append(preds, (*Stream).IsProgressive)
	}

	if f.Adaptive {
		preds = append(preds, (*Stream).IsAdaptive)
	}

	preds = append(preds, f.CustomPredicates...)

	return preds
}
