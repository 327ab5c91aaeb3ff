package pressure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/colorcarnival/carnival/color"
	"github.com/colorcarnival/carnival/network"
	. "github.com/smartystreets/goconvey/convey"
)

type alerts struct {
	messages []string
}

func (a *alerts) Show(message string, _ bool) {
	a.messages = append(a.messages, message)
}

func TestHexToRGB(t *testing.T) {
	Convey("Given hex inputs", t, func() {
		Convey("A well formed color parses into channels", func() {
			So(HexToRGB("#FF0000"), ShouldResemble, RGB{R: 255, G: 0, B: 0})
			So(HexToRGB("1a2b3c"), ShouldResemble, RGB{R: 0x1a, G: 0x2b, B: 0x3c})
		})

		Convey("Only the first # is removed", func() {
			rgb := HexToRGB("##ff00")
			So(rgb.R.IsNaN(), ShouldBeTrue)
			So(rgb.G, ShouldEqual, Channel(0xf0))
			So(rgb.B, ShouldEqual, Channel(0))
		})

		Convey("A channel reads its longest hex prefix", func() {
			rgb := HexToRGB("#fz0g00")
			So(rgb.R, ShouldEqual, Channel(0xf))
			So(rgb.G, ShouldEqual, Channel(0))
			So(rgb.B, ShouldEqual, Channel(0))
		})

		Convey("Signs and leading spaces are accepted", func() {
			rgb := HexToRGB(" f-f+f")
			So(rgb.R, ShouldEqual, Channel(0xf))
			So(rgb.G, ShouldEqual, Channel(-0xf))
			So(rgb.B, ShouldEqual, Channel(0xf))
		})

		Convey("Short and malformed input yields NaN channels", func() {
			rgb := HexToRGB("#abc")
			So(rgb.R, ShouldEqual, Channel(0xab))
			So(rgb.G, ShouldEqual, Channel(0xc))
			So(rgb.B.IsNaN(), ShouldBeTrue)

			rgb = HexToRGB("zzzzzz")
			So(rgb.R.IsNaN() && rgb.G.IsNaN() && rgb.B.IsNaN(), ShouldBeTrue)

			So(HexToRGB("").R.IsNaN(), ShouldBeTrue)
		})
	})
}

func TestChannelJSON(t *testing.T) {
	Convey("NaN channels are sent as null", t, func() {
		data, err := json.Marshal(Request{Target: HexToRGB("#FF0000"), Actual: HexToRGB("#zz0000")})
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `{"target":{"r":255,"g":0,"b":0},"actual":{"r":null,"g":0,"b":0}}`)
	})

	Convey("null decodes back to NaN", t, func() {
		var rgb RGB
		So(json.Unmarshal([]byte(`{"r":null,"g":1,"b":2}`), &rgb), ShouldBeNil)
		So(rgb.R.IsNaN(), ShouldBeTrue)
		So(rgb.G, ShouldEqual, Channel(1))
	})
}

func TestResult(t *testing.T) {
	Convey("Given results around the threshold", t, func() {
		So(Result{PressureValue: 70}.BarColor(), ShouldEqual, color.PressureLow)
		So(Result{PressureValue: 71}.BarColor(), ShouldEqual, color.PressureHigh)
		So(Result{PressureValue: 70.0001}.High(), ShouldBeTrue)
	})

	Convey("Percentages render like the service prints them", t, func() {
		r := Result{SaturationDifference: 12.5, PressureValue: 70}
		So(r.SaturationText(), ShouldEqual, "12.5%")
		So(r.PressureText(), ShouldEqual, "70%")
		So(r.BarWidth(), ShouldEqual, 70)
		So(Result{PressureValue: 0.0000001}.PressureText(), ShouldEqual, "1e-7%")
	})

	Convey("The bar renders for any width", t, func() {
		So(Bar(Result{PressureValue: 50}, 20), ShouldNotBeEmpty)
		So(Bar(Result{PressureValue: 150}, 20), ShouldNotBeEmpty)
	})
}

func TestCompute(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pressure service", t, func() {
		var (
			body   string
			status = http.StatusOK
			answer = `{"saturation_difference":0,"pressure_value":70}`
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			body = string(data)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(answer))
		}))
		defer server.Close()

		a := &alerts{}
		calc := New(network.NewResource(server.URL, server.Client()), a)

		Convey("Identical colors send both channels and fill the bar with the returned value", func() {
			result, err := calc.Compute(ctx, "#FF0000", "#FF0000")
			So(err, ShouldBeNil)
			So(body, ShouldEqual, `{"target":{"r":255,"g":0,"b":0},"actual":{"r":255,"g":0,"b":0}}`)
			So(result.BarWidth(), ShouldEqual, 70)
			So(result.BarColor(), ShouldEqual, color.PressureLow)
			So(a.messages, ShouldResemble, []string{MsgCalculated})
			So(calc.Result(), ShouldEqual, result)
		})

		Convey("71 switches the bar to the high color", func() {
			answer = `{"saturation_difference":3.25,"pressure_value":71}`
			result, err := calc.Compute(ctx, "#FF0000", "#FF0000")
			So(err, ShouldBeNil)
			So(result.BarColor(), ShouldEqual, color.PressureHigh)
			So(result.SaturationText(), ShouldEqual, "3.25%")
		})

		Convey("Malformed input is still sent", func() {
			_, err := calc.Compute(ctx, "nope", "#00ff00")
			So(err, ShouldBeNil)
			So(body, ShouldEqual, `{"target":{"r":null,"g":null,"b":null},"actual":{"r":0,"g":255,"b":0}}`)
		})

		Convey("A rejected request alerts and keeps no result", func() {
			status = http.StatusBadRequest
			answer = `{"error":"invalid color"}`
			result, err := calc.Compute(ctx, "#FF0000", "#FF0000")
			So(err, ShouldNotBeNil)
			So(result, ShouldBeNil)
			So(calc.Result(), ShouldBeNil)
			So(a.messages, ShouldResemble, []string{MsgFailed})
		})

		Convey("A second trigger while running is rejected", func() {
			calc.busy = true
			_, err := calc.Compute(ctx, "#FF0000", "#FF0000")
			So(err, ShouldEqual, ErrInFlight)
			So(body, ShouldBeEmpty)
		})
	})
}
