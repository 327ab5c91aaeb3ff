package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/filesystem"
	"github.com/colorcarnival/carnival/session"
	"github.com/colorcarnival/carnival/store"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type sender struct {
	msgs []tea.Msg
}

func (s *sender) Send(msg tea.Msg) {
	s.msgs = append(s.msgs, msg)
}

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("A shown alert is appended to the view", func() {
			So(m.Update(AlertMsg{Alert: alert.Alert{Message: "Color deleted", Success: true, Seq: 1}, Visible: true}), ShouldBeTrue)
			So(m.Visible(), ShouldBeTrue)
			So(m.View("body", 40), ShouldContainSubstring, "Color deleted")
		})

		Convey("A late hide of an older alert is ignored", func() {
			m.Update(AlertMsg{Alert: alert.Alert{Message: "second", Seq: 2}, Visible: true})
			m.Update(AlertMsg{Alert: alert.Alert{Message: "first", Seq: 1}, Visible: false})
			So(m.Visible(), ShouldBeTrue)
			So(m.View("body", 0), ShouldContainSubstring, "second")
		})

		Convey("A hide removes the banner", func() {
			m.Update(AlertMsg{Alert: alert.Alert{Message: "bye", Seq: 3}, Visible: true})
			m.Update(AlertMsg{Alert: alert.Alert{Message: "bye", Seq: 3}, Visible: false})
			So(m.View("body", 0), ShouldEqual, "body")
		})

		Convey("Status messages update the indicator", func() {
			So(m.Update(StatusMsg(session.Status{Username: mo.Some("ada")})), ShouldBeTrue)
			So(m.Status(), ShouldEqual, "Signed in as ada")
		})

		Convey("Other messages are not consumed", func() {
			So(m.Update(tea.WindowSizeMsg{}), ShouldBeFalse)
		})
	})
}

func TestBridge(t *testing.T) {
	Convey("Given a bridged box and session", t, func() {
		filesystem.SetMemMapFs()
		box := alert.New()
		sess := session.New(store.Open(filepath.Join(t.TempDir(), "store.json")))
		s := &sender{}

		stop := Bridge(s, box, sess)

		box.Show("Palette saved! 🎉", true)
		So(sess.Set("ada", ""), ShouldBeNil)

		So(s.msgs, ShouldHaveLength, 2)
		So(s.msgs[0].(AlertMsg).Alert.Message, ShouldEqual, "Palette saved! 🎉")
		So(session.Status(s.msgs[1].(StatusMsg)).Text(), ShouldEqual, "Signed in as ada")

		stop()
		box.Show("again", true)
		So(s.msgs, ShouldHaveLength, 2)

		Reset(filesystem.SetOsFs)
	})
}
