package stream

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// testStreams mirrors a typical progressive+adaptive format set.
func testStreams() []*Stream {
	return []*Stream{
		{
			Itag: 18, MimeType: "video/mp4", Resolution: "360p", FPS: 30,
			Bitrate: 500_000, VideoCodec: "avc1.42001E", AudioCodec: "mp4a.40.2",
			IncludesAudioTrack: true, IncludesVideoTrack: true,
		},
		{
			Itag: 22, MimeType: "video/mp4", Resolution: "720p", FPS: 30,
			Bitrate: 1_500_000, VideoCodec: "avc1.64001F", AudioCodec: "mp4a.40.2",
			IncludesAudioTrack: true, IncludesVideoTrack: true,
		},
		{
			Itag: 137, MimeType: "video/mp4", Resolution: "1080p", FPS: 30,
			Bitrate: 4_000_000, VideoCodec: "avc1.640028",
			IncludesVideoTrack: true,
		},
		{
			Itag: 248, MimeType: "video/webm", Resolution: "1080p", FPS: 30,
			Bitrate: 3_000_000, VideoCodec: "vp9",
			IncludesVideoTrack: true,
		},
		{
			Itag: 140, MimeType: "audio/mp4", Bitrate: 128_000,
			AudioCodec: "mp4a.40.2", IncludesAudioTrack: true,
		},
		{
			Itag: 251, MimeType: "audio/webm", Bitrate: 160_000,
			AudioCodec: "opus", IncludesAudioTrack: true,
		},
	}
}

func TestQueryConstruction(t *testing.T) {
	Convey("Given a query over a stream sequence", t, func() {
		q := NewQuery(testStreams())

		Convey("It counts every stream", func() {
			So(q.Count(), ShouldEqual, 6)
		})

		Convey("It preserves insertion order", func() {
			all := q.All()
			So(all[0].Itag, ShouldEqual, 18)
			So(all[len(all)-1].Itag, ShouldEqual, 251)
		})

		Convey("When two streams share an itag, the later wins", func() {
			dup := NewQuery([]*Stream{
				{Itag: 22, Resolution: "720p"},
				{Itag: 22, Resolution: "1080p"},
			})
			s := dup.GetByItag(22)
			So(s.IsPresent(), ShouldBeTrue)
			So(s.MustGet().Resolution, ShouldEqual, "1080p")
		})

		Convey("An empty sequence is valid", func() {
			empty := NewQuery(nil)
			So(empty.Count(), ShouldEqual, 0)
			So(empty.First().IsAbsent(), ShouldBeTrue)
			So(empty.Last().IsAbsent(), ShouldBeTrue)
			So(empty.All(), ShouldBeEmpty)
		})
	})
}

func TestQueryAccessors(t *testing.T) {
	Convey("Given a populated query", t, func() {
		q := NewQuery(testStreams())

		Convey("First returns the head of the sequence", func() {
			So(q.First().MustGet().Itag, ShouldEqual, 18)
		})

		Convey("Last returns the tail of the sequence", func() {
			So(q.Last().MustGet().Itag, ShouldEqual, 251)
		})

		Convey("GetByItag finds a present stream", func() {
			So(q.GetByItag(137).MustGet().Resolution, ShouldEqual, "1080p")
		})

		Convey("GetByItag is absent for an unknown itag", func() {
			So(q.GetByItag(999).IsAbsent(), ShouldBeTrue)
		})

		Convey("All returns a defensive copy", func() {
			all := q.All()
			all[0], all[1] = all[1], all[0]
			So(q.First().MustGet().Itag, ShouldEqual, 18)
		})
	})
}

func TestQueryOrdering(t *testing.T) {
	Convey("Given a populated query", t, func() {
		q := NewQuery(testStreams())

		Convey("OrderBy sorts ascending by the named attribute", func() {
			byRate, err := q.OrderBy("bitrate")
			So(err, ShouldBeNil)
			So(byRate.First().MustGet().Itag, ShouldEqual, 140)
			So(byRate.Last().MustGet().Itag, ShouldEqual, 137)

			Convey("And leaves the receiver untouched", func() {
				So(q.First().MustGet().Itag, ShouldEqual, 18)
			})
		})

		Convey("OrderBy then Desc yields descending order", func() {
			byRate, err := q.OrderBy("bitrate")
			So(err, ShouldBeNil)
			So(byRate.Desc().First().MustGet().Itag, ShouldEqual, 137)
		})

		Convey("OrderBy is stable on ties", func() {
			// Both 1080p streams share fps 30 with everything else;
			// sorting by fps must keep 137 before 248.
			byFPS, err := q.OrderBy("fps")
			So(err, ShouldBeNil)

			var seen []int
			for _, s := range byFPS.All() {
				if s.Resolution == "1080p" {
					seen = append(seen, s.Itag)
				}
			}
			So(seen, ShouldResemble, []int{137, 248})
		})

		Convey("OrderBy resolution sorts by pixel height", func() {
			byRes, err := q.OrderBy("resolution")
			So(err, ShouldBeNil)
			So(byRes.Last().MustGet().Resolution, ShouldEqual, "1080p")
			// Audio-only streams carry no label and sort first.
			So(byRes.First().MustGet().Resolution, ShouldEqual, "")
		})

		Convey("OrderBy rejects an unknown attribute", func() {
			_, err := q.OrderBy("bitrte")

			var unknown *UnknownAttributeError
			So(errors.As(err, &unknown), ShouldBeTrue)
			So(unknown.Attribute, ShouldEqual, "bitrte")
			So(unknown.Closest, ShouldEqual, "bitrate")
		})

		Convey("Desc reverses the current order structurally", func() {
			reversed := q.Desc()
			So(reversed.First().MustGet().Itag, ShouldEqual, 251)
			So(reversed.Last().MustGet().Itag, ShouldEqual, 18)
			So(reversed.Desc().All(), ShouldResemble, q.All())
		})

		Convey("Asc is the identity", func() {
			So(q.Asc().All(), ShouldResemble, q.All())
		})
	})
}
