package alert

import (
	"bytes"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type event struct {
	alert   Alert
	visible bool
	at      time.Time
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) listen(a Alert, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{alert: a, visible: visible, at: time.Now()})
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func TestShow(t *testing.T) {
	Convey("Given a box with a short delay", t, func() {
		const delay = 80 * time.Millisecond
		box := newBox(delay)
		rec := &recorder{}
		box.Subscribe(rec.listen)

		Convey("A single message is visible then hides once", func() {
			box.Show("Palette saved! 🎉", true)

			current, visible := box.Current()
			So(visible, ShouldBeTrue)
			So(current.Message, ShouldEqual, "Palette saved! 🎉")
			So(current.Success, ShouldBeTrue)

			time.Sleep(delay * 3)

			_, visible = box.Current()
			So(visible, ShouldBeFalse)

			events := rec.snapshot()
			So(events, ShouldHaveLength, 2)
			So(events[1].visible, ShouldBeFalse)
		})

		Convey("Two shows within the delay keep only the second and hide once, timed from it", func() {
			box.Show("first", true)
			time.Sleep(delay / 2)
			second := time.Now()
			box.Show("second", false)

			current, visible := box.Current()
			So(visible, ShouldBeTrue)
			So(current.Message, ShouldEqual, "second")

			time.Sleep(delay * 3)

			events := rec.snapshot()
			hides := 0
			for _, e := range events {
				if !e.visible {
					hides++
					So(e.alert.Message, ShouldEqual, "second")
					So(e.at.Sub(second), ShouldBeGreaterThanOrEqualTo, delay)
				}
			}
			So(hides, ShouldEqual, 1)

			shown := []string{}
			for _, e := range events {
				if e.visible {
					shown = append(shown, e.alert.Message)
				}
			}
			So(shown, ShouldResemble, []string{"first", "second"})
		})

		Convey("A stale timer does not hide a newer message", func() {
			box.Show("old", true)
			oldSeq := box.current.Seq
			box.Show("new", true)

			box.hide(oldSeq)

			current, visible := box.Current()
			So(visible, ShouldBeTrue)
			So(current.Message, ShouldEqual, "new")
		})

		Convey("An unsubscribed listener is no longer notified", func() {
			other := &recorder{}
			unsubscribe := box.Subscribe(other.listen)
			unsubscribe()

			box.Show("hello", true)
			So(other.snapshot(), ShouldBeEmpty)
		})
	})
}

func TestDefault(t *testing.T) {
	Convey("The process-wide box is a single instance", t, func() {
		So(Default(), ShouldPointTo, Default())
		So(Default().delay, ShouldEqual, Delay)
	})
}

func TestPrinter(t *testing.T) {
	Convey("Given a printer listener", t, func() {
		var buf bytes.Buffer
		print := Printer(&buf)

		Convey("Shown alerts are written", func() {
			print(Alert{Message: "Color deleted", Success: true}, true)
			So(buf.String(), ShouldContainSubstring, "Color deleted")
		})

		Convey("Hides are not written", func() {
			print(Alert{Message: "Color deleted", Success: true}, false)
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}
