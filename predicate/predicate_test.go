package predicate

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/stream"
)

func init() {
	filesystem.SetMemMapFs()
}

func writeScript(path, body string) {
	if err := filesystem.API().WriteFile(path, []byte(body), 0644); err != nil {
		panic(err)
	}
}

func TestFromFile(t *testing.T) {
	Convey("Given a filter script", t, func() {
		progressive := &stream.Stream{
			Itag: 22, MimeType: "video/mp4", Resolution: "720p",
			Bitrate:            1_500_000,
			IncludesAudioTrack: true, IncludesVideoTrack: true,
		}
		audio := &stream.Stream{
			Itag: 140, MimeType: "audio/mp4", Bitrate: 128_000,
			IncludesAudioTrack: true,
		}

		Convey("Keep sees the stream attributes", func() {
			writeScript("/scripts/hd.lua", `
				function Keep(stream)
					return stream.resolution == "720p" and stream.is_progressive
				end
			`)

			keep, err := FromFile("/scripts/hd.lua")
			So(err, ShouldBeNil)
			So(keep(progressive), ShouldBeTrue)
			So(keep(audio), ShouldBeFalse)
		})

		Convey("The predicate composes with the query engine", func() {
			writeScript("/scripts/audio.lua", `
				function Keep(stream)
					return stream.type == "audio"
				end
			`)

			keep, err := FromFile("/scripts/audio.lua")
			So(err, ShouldBeNil)

			q := stream.NewQuery([]*stream.Stream{progressive, audio})
			got := q.Filter(stream.Filter{CustomPredicates: []stream.Predicate{keep}})
			So(got.Count(), ShouldEqual, 1)
			So(got.First().MustGet().Itag, ShouldEqual, 140)
		})

		Convey("The predicate stacks with built-in criteria", func() {
			writeScript("/scripts/rate.lua", `
				function Keep(stream)
					return stream.bitrate >= 1000000
				end
			`)

			keep, err := FromFile("/scripts/rate.lua")
			So(err, ShouldBeNil)

			q := stream.NewQuery([]*stream.Stream{progressive, audio})
			got := q.Filter(stream.Filter{
				Type:             mo.Some("video"),
				CustomPredicates: []stream.Predicate{keep},
			})
			So(got.Count(), ShouldEqual, 1)
			So(got.First().MustGet().Itag, ShouldEqual, 22)
		})

		Convey("A missing Keep function is a hard error", func() {
			writeScript("/scripts/empty.lua", `local x = 1`)

			_, err := FromFile("/scripts/empty.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("A script that fails to compile is a hard error", func() {
			writeScript("/scripts/broken.lua", `function Keep(`)

			_, err := FromFile("/scripts/broken.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("A runtime error inside Keep fails closed", func() {
			writeScript("/scripts/panic.lua", `
				function Keep(stream)
					error("boom")
				end
			`)

			keep, err := FromFile("/scripts/panic.lua")
			So(err, ShouldBeNil)
			So(keep(progressive), ShouldBeFalse)
		})

		Convey("A missing script file is a hard error", func() {
			_, err := FromFile("/scripts/absent.lua")
			So(err, ShouldNotBeNil)
		})
	})
}
