package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/colorcarnival/carnival/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrune(t *testing.T) {
	Convey("Given a directory with fresh and stale files", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		dir := filepath.Join("cache", "carnival")

		fresh := filepath.Join(dir, "version.json")
		stale := filepath.Join(dir, "nested", "old.json")
		So(fs.WriteFile(fresh, []byte("{}"), 0o644), ShouldBeNil)
		So(fs.WriteFile(stale, []byte("{}"), 0o644), ShouldBeNil)

		old := time.Now().Add(-2 * CacheTTL)
		So(fs.Chtimes(stale, old, old), ShouldBeNil)

		Convey("When it is pruned", func() {
			removed, err := Prune(dir, CacheTTL)

			Convey("Then only the stale file is gone", func() {
				So(err, ShouldBeNil)
				So(removed, ShouldEqual, 1)

				_, err := fs.Stat(stale)
				So(err, ShouldNotBeNil)
				exists, _ := fs.Exists(fresh)
				So(exists, ShouldBeTrue)
				isDir, _ := fs.IsDir(filepath.Join(dir, "nested"))
				So(isDir, ShouldBeTrue)
			})
		})

		Reset(filesystem.SetOsFs)
	})
}
