package manifest

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidq-cli/vidq/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

const sampleManifest = `{
	"videoId": "dQw4w9WgXcQ",
	"title": "Some Video",
	"author": "Some Channel",
	"lengthSeconds": "212",
	"formats": [
		{
			"itag": 18,
			"mimeType": "video/mp4; codecs=\"avc1.42001E, mp4a.40.2\"",
			"qualityLabel": "360p",
			"fps": 30,
			"bitrate": 600000,
			"averageBitrate": 500000,
			"contentLength": "13000000",
			"url": "https://cdn.example.com/18"
		},
		{
			"itag": 137,
			"mimeType": "video/mp4; codecs=\"avc1.640028\"",
			"qualityLabel": "1080p",
			"fps": 30,
			"bitrate": 4000000,
			"contentLength": "90000000",
			"url": "https://cdn.example.com/137"
		},
		{
			"itag": 140,
			"mimeType": "audio/mp4; codecs=\"mp4a.40.2\"",
			"bitrate": 130000,
			"averageBitrate": 128000,
			"contentLength": "3400000",
			"url": "https://cdn.example.com/140"
		},
		{
			"mimeType": "video/mp4"
		}
	]
}`

func TestParse(t *testing.T) {
	Convey("Given a raw manifest document", t, func() {
		m, err := Parse([]byte(sampleManifest))
		So(err, ShouldBeNil)

		Convey("Video metadata is decoded", func() {
			So(m.VideoID, ShouldEqual, "dQw4w9WgXcQ")
			So(m.Title, ShouldEqual, "Some Video")
			So(m.Author, ShouldEqual, "Some Channel")
			So(m.LengthSeconds, ShouldEqual, 212)
		})

		Convey("Formats without an itag are skipped", func() {
			So(len(m.Streams), ShouldEqual, 3)
		})

		Convey("A two-codec video format is progressive", func() {
			s := m.Streams[0]
			So(s.Itag, ShouldEqual, 18)
			So(s.MimeType, ShouldEqual, "video/mp4")
			So(s.Resolution, ShouldEqual, "360p")
			So(s.VideoCodec, ShouldEqual, "avc1.42001E")
			So(s.AudioCodec, ShouldEqual, "mp4a.40.2")
			So(s.IsProgressive(), ShouldBeTrue)
		})

		Convey("A one-codec video format is video-only", func() {
			s := m.Streams[1]
			So(s.VideoCodec, ShouldEqual, "avc1.640028")
			So(s.AudioCodec, ShouldBeEmpty)
			So(s.IncludesVideoTrack, ShouldBeTrue)
			So(s.IncludesAudioTrack, ShouldBeFalse)
		})

		Convey("An audio format carries only an audio track", func() {
			s := m.Streams[2]
			So(s.AudioCodec, ShouldEqual, "mp4a.40.2")
			So(s.IncludesAudioTrack, ShouldBeTrue)
			So(s.IncludesVideoTrack, ShouldBeFalse)
		})

		Convey("Average bitrate is preferred over raw bitrate", func() {
			So(m.Streams[0].Bitrate, ShouldEqual, 500000)
			So(m.Streams[1].Bitrate, ShouldEqual, 4000000)
		})

		Convey("Content length parses to file size", func() {
			So(m.Streams[1].FileSize, ShouldEqual, 90000000)
		})

		Convey("Query hands the sequence to the engine in manifest order", func() {
			q := m.Query()
			So(q.Count(), ShouldEqual, 3)
			So(q.First().MustGet().Itag, ShouldEqual, 18)
			So(q.GetByItag(140).IsPresent(), ShouldBeTrue)
		})
	})

	Convey("Malformed JSON is a hard error", t, func() {
		_, err := Parse([]byte("{not json"))
		So(err, ShouldNotBeNil)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a manifest file on disk", t, func() {
		path := "/manifests/video.json"
		So(filesystem.API().WriteFile(path, []byte(sampleManifest), 0644), ShouldBeNil)

		m, err := Load(path)
		So(err, ShouldBeNil)
		So(m.VideoID, ShouldEqual, "dQw4w9WgXcQ")

		Convey("A missing file is a hard error", func() {
			_, err := Load("/manifests/absent.json")
			So(err, ShouldNotBeNil)
		})
	})
}
