package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorcarnival/carnival/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestWhere(t *testing.T) {
	Convey("Given a custom config path", t, func() {
		custom := filepath.Join(os.TempDir(), "carnival-where-test")
		So(os.Setenv(EnvConfigPath, custom), ShouldBeNil)
		Reset(func() { _ = os.Unsetenv(EnvConfigPath) })

		Convey("Config should resolve to it and create it", func() {
			So(Config(), ShouldEqual, custom)
			exists, err := filesystem.API().DirExists(custom)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Store and Logs should live under it", func() {
			So(Store(), ShouldEqual, filepath.Join(custom, "store.json"))
			So(Logs(), ShouldEqual, filepath.Join(custom, "logs"))
		})
	})
}
