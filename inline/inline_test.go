package inline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
)

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		VideoID: "abc123",
		Title:   "Test Video",
		Streams: []*stream.Stream{
			{
				Itag: 18, MimeType: "video/mp4", Resolution: "360p", FPS: 30,
				Bitrate:            500_000,
				IncludesAudioTrack: true, IncludesVideoTrack: true,
				URL: "https://cdn/18",
			},
			{
				Itag: 22, MimeType: "video/mp4", Resolution: "720p", FPS: 30,
				Bitrate:            1_500_000,
				IncludesAudioTrack: true, IncludesVideoTrack: true,
				URL: "https://cdn/22",
			},
			{
				Itag: 140, MimeType: "audio/mp4", Bitrate: 128_000,
				IncludesAudioTrack: true,
				URL:                "https://cdn/140",
			},
		},
	}
}

func TestParseSelector(t *testing.T) {
	Convey("Selector expressions", t, func() {
		q := testManifest().Query()
		viper.Set(key.SelectOrderBy, "bitrate")

		cases := map[string]int{
			"first":   18,
			"last":    140,
			"best":    22,
			"worst":   140,
			"itag=22": 22,
			"1":       22,
		}

		for expr, want := range cases {
			selector, err := ParseSelector(expr)
			So(err, ShouldBeNil)

			picked, err := selector(q)
			So(err, ShouldBeNil)
			So(picked.MustGet().Itag, ShouldEqual, want)
		}

		Convey("Out-of-range index is absent, not an error", func() {
			selector, err := ParseSelector("9")
			So(err, ShouldBeNil)

			picked, err := selector(q)
			So(err, ShouldBeNil)
			So(picked.IsAbsent(), ShouldBeTrue)
		})

		Convey("Unknown itag is absent", func() {
			selector, err := ParseSelector("itag=999")
			So(err, ShouldBeNil)

			picked, err := selector(q)
			So(err, ShouldBeNil)
			So(picked.IsAbsent(), ShouldBeTrue)
		})

		Convey("Gibberish is rejected", func() {
			_, err := ParseSelector("bestest")
			So(err, ShouldNotBeNil)
		})

		Convey("A bad order attribute surfaces through best", func() {
			viper.Set(key.SelectOrderBy, "nope")
			selector, err := ParseSelector("best")
			So(err, ShouldBeNil)

			_, err = selector(q)
			So(err, ShouldNotBeNil)
			viper.Set(key.SelectOrderBy, "bitrate")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given an inline run", t, func() {
		viper.Set(key.SelectOrderBy, "bitrate")
		var out bytes.Buffer

		Convey("Without a selector it emits every remaining URL", func() {
			err := Run(&Options{
				Out:      &out,
				Manifest: testManifest(),
				Criteria: stream.Filter{Progressive: true},
			})
			So(err, ShouldBeNil)

			lines := strings.Fields(out.String())
			So(lines, ShouldResemble, []string{"https://cdn/18", "https://cdn/22"})
		})

		Convey("Ordering applies before selection", func() {
			selector, _ := ParseSelector("first")
			err := Run(&Options{
				Out:        &out,
				Manifest:   testManifest(),
				OrderBy:    mo.Some("bitrate"),
				Descending: true,
				Selector:   mo.Some(selector),
			})
			So(err, ShouldBeNil)
			So(strings.TrimSpace(out.String()), ShouldEqual, "https://cdn/22")
		})

		Convey("An unknown order attribute is a hard error", func() {
			err := Run(&Options{
				Out:      &out,
				Manifest: testManifest(),
				OrderBy:  mo.Some("bitrte"),
			})
			So(err, ShouldNotBeNil)
		})

		Convey("Json output carries the manifest metadata", func() {
			selector, _ := ParseSelector("best")
			err := Run(&Options{
				Out:      &out,
				Manifest: testManifest(),
				Selector: mo.Some(selector),
				Json:     true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(out.Bytes(), &output), ShouldBeNil)
			So(output.VideoID, ShouldEqual, "abc123")
			So(output.Count, ShouldEqual, 1)
			So(output.Streams[0].Itag, ShouldEqual, 22)
		})

		Convey("An empty selection emits an empty Json result", func() {
			err := Run(&Options{
				Out:      &out,
				Manifest: testManifest(),
				Criteria: stream.Filter{OnlyAudio: true, OnlyVideo: true},
				Json:     true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(out.Bytes(), &output), ShouldBeNil)
			So(output.Count, ShouldEqual, 0)
			So(output.Streams, ShouldBeEmpty)
		})
	})
}
