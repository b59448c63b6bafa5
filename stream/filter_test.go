package stream

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func itags(streams []*Stream) []int {
	out := make([]int, len(streams))
	for i, s := range streams {
		out[i] = s.Itag
	}
	return out
}

func TestFilter(t *testing.T) {
	Convey("Given a populated query", t, func() {
		q := NewQuery(testStreams())

		Convey("No criteria is the identity filter", func() {
			So(q.Filter(Filter{}).All(), ShouldResemble, q.All())
		})

		Convey("Filtering never grows the result", func() {
			for _, criteria := range []Filter{
				{},
				{Resolution: mo.Some("720p")},
				{OnlyAudio: true},
				{Type: mo.Some("video")},
			} {
				So(q.Filter(criteria).Count(), ShouldBeLessThanOrEqualTo, q.Count())
			}
		})

		Convey("By resolution", func() {
			got := q.Filter(Filter{Resolution: mo.Some("720p")})
			So(got.Count(), ShouldEqual, 1)
			So(got.First().MustGet().Itag, ShouldEqual, 22)
		})

		Convey("By fps", func() {
			got := q.Filter(Filter{FPS: mo.Some(30)})
			So(itags(got.All()), ShouldResemble, []int{18, 22, 137, 248})
		})

		Convey("By mime type", func() {
			got := q.Filter(Filter{MimeType: mo.Some("audio/webm")})
			So(itags(got.All()), ShouldResemble, []int{251})
		})

		Convey("By type and subtype", func() {
			So(q.Filter(Filter{Type: mo.Some("audio")}).Count(), ShouldEqual, 2)
			So(itags(q.Filter(Filter{Subtype: mo.Some("webm")}).All()), ShouldResemble, []int{248, 251})
		})

		Convey("By bitrate", func() {
			got := q.Filter(Filter{Bitrate: mo.Some(128_000)})
			So(itags(got.All()), ShouldResemble, []int{140})
		})

		Convey("By codec", func() {
			So(itags(q.Filter(Filter{VideoCodec: mo.Some("vp9")}).All()), ShouldResemble, []int{248})
			So(q.Filter(Filter{AudioCodec: mo.Some("mp4a.40.2")}).Count(), ShouldEqual, 3)
		})

		Convey("By track composition", func() {
			So(itags(q.Filter(Filter{OnlyAudio: true}).All()), ShouldResemble, []int{140, 251})
			So(itags(q.Filter(Filter{OnlyVideo: true}).All()), ShouldResemble, []int{137, 248})
			So(itags(q.Filter(Filter{Progressive: true}).All()), ShouldResemble, []int{18, 22})
			So(itags(q.Filter(Filter{Adaptive: true}).All()), ShouldResemble, []int{137, 248, 140, 251})
		})

		Convey("OnlyAudio and OnlyVideo together are mutually exclusive", func() {
			So(q.Filter(Filter{OnlyAudio: true, OnlyVideo: true}).Count(), ShouldEqual, 0)
		})

		Convey("Criteria are ANDed", func() {
			got := q.Filter(Filter{Type: mo.Some("video"), Subtype: mo.Some("webm")})
			So(itags(got.All()), ShouldResemble, []int{248})
		})

		Convey("Aliases", func() {
			Convey("Res stands in for Resolution", func() {
				got := q.Filter(Filter{Res: mo.Some("720p")})
				So(itags(got.All()), ShouldResemble, []int{22})
			})

			Convey("FileExtension stands in for Subtype", func() {
				got := q.Filter(Filter{FileExtension: mo.Some("webm")})
				So(itags(got.All()), ShouldResemble, []int{248, 251})
			})

			Convey("ABR stands in for Bitrate", func() {
				got := q.Filter(Filter{ABR: mo.Some(160_000)})
				So(itags(got.All()), ShouldResemble, []int{251})
			})

			Convey("The primary name wins when both are set", func() {
				criteria := Filter{
					Resolution: mo.Some("720p"),
					Res:        mo.Some("1080p"),
				}
				So(len(criteria.predicates()), ShouldEqual, 1)
				So(itags(q.Filter(criteria).All()), ShouldResemble, []int{22})
			})
		})

		Convey("Custom predicates are ANDed in, in order", func() {
			got := q.Filter(Filter{
				CustomPredicates: []Predicate{
					func(s *Stream) bool { return s.Bitrate >= 1_000_000 },
					func(s *Stream) bool { return s.Subtype() == "mp4" },
				},
			})
			So(itags(got.All()), ShouldResemble, []int{22, 137})
		})

		Convey("Filtering leaves the source query untouched", func() {
			before := q.All()
			_ = q.Filter(Filter{OnlyAudio: true})
			So(q.All(), ShouldResemble, before)
		})

		Convey("The filtered query carries a fresh itag index", func() {
			got := q.Filter(Filter{OnlyAudio: true})
			So(got.GetByItag(22).IsAbsent(), ShouldBeTrue)
			So(got.GetByItag(140).IsPresent(), ShouldBeTrue)
		})
	})
}
