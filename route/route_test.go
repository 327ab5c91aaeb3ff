package route

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDetect(t *testing.T) {
	Convey("Given page paths", t, func() {
		So(Detect("/palette.html"), ShouldEqual, Palette)
		So(Detect("/static/grid.html"), ShouldEqual, Grid)
		So(Detect("pressure"), ShouldEqual, Pressure)
		So(Detect("/"), ShouldEqual, None)

		Convey("The first matching feature wins", func() {
			So(Detect("/palette-grid-pressure"), ShouldEqual, Palette)
			So(Detect("/grid/pressure"), ShouldEqual, Grid)
		})
	})

	Convey("Every page round trips through its name", t, func() {
		for _, p := range Pages() {
			So(Detect(p.String()), ShouldEqual, p)
		}
		So(None.String(), ShouldEqual, "none")
	})
}
