package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("manifest.cache.lifetime")
			So(result, ShouldEqual, "manifest_cache_lifetime")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default["logs.write"]
			So(f.Env(), ShouldEqual, "VIDQ_LOGS_WRITE")
		})
	})
}
