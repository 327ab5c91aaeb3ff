package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/colorcarnival/carnival/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        string
}

func newServer(status int, reply string, seen *recorded) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*seen = recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(data),
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
}

func TestCall(t *testing.T) {
	Convey("Given a server accepting the request", t, func() {
		var seen recorded
		srv := newServer(http.StatusCreated, `{"id": 7, "name": "Sunset"}`, &seen)
		Reset(srv.Close)

		resource := NewResource(srv.URL+"/", srv.Client())

		Convey("A POST sends the JSON body with the JSON content type", func() {
			resp, err := resource.Call(context.Background(), http.MethodPost, "/api/palettes", map[string]string{"name": "Sunset"})
			So(err, ShouldBeNil)
			So(resp.OK, ShouldBeTrue)
			So(resp.Status, ShouldEqual, http.StatusCreated)
			So(seen.method, ShouldEqual, http.MethodPost)
			So(seen.path, ShouldEqual, "/api/palettes")
			So(seen.contentType, ShouldEqual, "application/json")
			So(seen.body, ShouldEqual, `{"name":"Sunset"}`)

			var created struct {
				ID int `json:"id"`
			}
			So(resp.Decode(&created), ShouldBeNil)
			So(created.ID, ShouldEqual, 7)
		})

		Convey("A bodiless DELETE still carries the JSON content type", func() {
			_, err := resource.Call(context.Background(), http.MethodDelete, "/api/palettes/7", nil)
			So(err, ShouldBeNil)
			So(seen.contentType, ShouldEqual, "application/json")
			So(seen.body, ShouldBeEmpty)
		})
	})

	Convey("Given a server rejecting the request", t, func() {
		var seen recorded
		srv := newServer(http.StatusConflict, `{"error": "name taken"}`, &seen)
		Reset(srv.Close)

		resp, err := NewResource(srv.URL, srv.Client()).Call(context.Background(), http.MethodPost, "/api/palettes", map[string]string{"name": "x"})

		Convey("It is not a transport error and the server message is readable", func() {
			So(err, ShouldBeNil)
			So(resp.OK, ShouldBeFalse)
			So(resp.Status, ShouldEqual, http.StatusConflict)
			So(resp.Error(), ShouldEqual, "name taken")
		})
	})

	Convey("Given a server replying with an empty body", t, func() {
		var seen recorded
		srv := newServer(http.StatusNoContent, "", &seen)
		Reset(srv.Close)

		resp, err := NewResource(srv.URL, srv.Client()).Call(context.Background(), http.MethodDelete, "/api/palettes/1", nil)

		Convey("Body should be nil and decoding should fail cleanly", func() {
			So(err, ShouldBeNil)
			So(resp.OK, ShouldBeTrue)
			So(resp.Body, ShouldBeNil)
			So(resp.Decode(&json.RawMessage{}), ShouldNotBeNil)
			So(resp.Error(), ShouldBeEmpty)
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewResource(url, nil).Call(context.Background(), http.MethodGet, "/api/palettes", nil)

		Convey("The failure should be a distinguishable network error", func() {
			So(err, ShouldNotBeNil)
			So(IsNetworkError(err), ShouldBeTrue)
		})
	})

	Convey("Given an unencodable body", t, func() {
		_, err := NewResource("http://127.0.0.1:1", nil).Call(context.Background(), http.MethodPost, "/api/pressure", map[string]any{"c": make(chan int)})

		Convey("It fails before any request and is not a network error", func() {
			So(err, ShouldNotBeNil)
			So(IsNetworkError(err), ShouldBeFalse)
		})
	})
}

func TestRequestContext(t *testing.T) {
	Convey("Given api.timeout", t, func() {
		Convey("A positive value sets a deadline", func() {
			viper.Set(key.APITimeout, 5)
			ctx, cancel := RequestContext(context.Background())
			defer cancel()

			_, ok := ctx.Deadline()
			So(ok, ShouldBeTrue)
		})

		Convey("Zero never expires", func() {
			viper.Set(key.APITimeout, 0)
			ctx, cancel := RequestContext(context.Background())
			defer cancel()

			_, ok := ctx.Deadline()
			So(ok, ShouldBeFalse)
		})

		Reset(func() { viper.Set(key.APITimeout, 30) })
	})
}
