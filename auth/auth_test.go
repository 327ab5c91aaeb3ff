package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/colorcarnival/carnival/filesystem"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/network"
	"github.com/colorcarnival/carnival/session"
	"github.com/colorcarnival/carnival/store"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

type alerts struct {
	messages []string
}

func (a *alerts) Show(message string, _ bool) {
	a.messages = append(a.messages, message)
}

func (a *alerts) last() string {
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}

func TestMode(t *testing.T) {
	Convey("Modes toggle and label the form", t, func() {
		So(Login.Toggle(), ShouldEqual, Register)
		So(Register.Toggle(), ShouldEqual, Login)
		So(Login.Title(), ShouldEqual, "Sign In")
		So(Register.Title(), ShouldEqual, "Create Account")
		So(Register.SubmitLabel(), ShouldEqual, "Register")
		So(Login.ToggleLabel(), ShouldEqual, "Need an account?")
		So(Login.Endpoint(), ShouldEqual, "/api/login")
		So(Register.Endpoint(), ShouldEqual, "/api/register")
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	Convey("Given an auth service and a session", t, func() {
		filesystem.SetMemMapFs()
		keyring.MockInit()
		viper.Set(key.SessionKeyring, true)

		var (
			paths    []string
			received Credentials
			status   = http.StatusOK
			answer   = `{"message":"ok","token":"abc"}`
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&received)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(answer))
		}))
		defer server.Close()

		storePath := filepath.Join(t.TempDir(), "store.json")
		sess := session.New(store.Open(storePath))
		var indicator string
		sess.OnChange(func(s session.Status) { indicator = s.Text() })

		a := &alerts{}
		flow := New(network.NewResource(server.URL, server.Client()), a, sess)

		Convey("Blank fields are rejected without a request", func() {
			done, err := flow.Submit(ctx, " ", "secret")
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)
			So(a.last(), ShouldEqual, MsgMissingFields)
			So(paths, ShouldBeEmpty)
		})

		Convey("Signing in records the trimmed username", func() {
			done, err := flow.Submit(ctx, " ada ", " secret ")
			So(err, ShouldBeNil)
			So(done, ShouldBeTrue)
			So(paths, ShouldResemble, []string{"/api/login"})
			So(received, ShouldResemble, Credentials{Username: "ada", Password: "secret"})
			So(a.last(), ShouldEqual, "Welcome back, ada!")
			So(indicator, ShouldEqual, "Signed in as ada")

			token, err := session.Token()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "abc")
		})

		Convey("A rejected sign in shows the server message", func() {
			status = http.StatusUnauthorized
			answer = `{"error":"Invalid credentials"}`

			done, err := flow.Submit(ctx, "ada", "nope")
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)
			So(a.last(), ShouldEqual, "Invalid credentials")
			So(sess.Username().IsAbsent(), ShouldBeTrue)
		})

		Convey("A rejection without a message shows the generic one", func() {
			status = http.StatusInternalServerError
			answer = ``

			_, _ = flow.Submit(ctx, "ada", "nope")
			So(a.last(), ShouldEqual, MsgGenericError)
		})

		Convey("Registering does not sign in and switches to login", func() {
			flow.SetMode(Register)

			done, err := flow.Submit(ctx, "grace", "secret")
			So(err, ShouldBeNil)
			So(done, ShouldBeTrue)
			So(paths, ShouldResemble, []string{"/api/register"})
			So(a.last(), ShouldEqual, MsgRegistered)
			So(flow.Mode(), ShouldEqual, Login)
			So(sess.Username().IsAbsent(), ShouldBeTrue)
		})

		Convey("Logging out clears the session so the next load is signed out", func() {
			_, err := flow.Submit(ctx, "ada", "secret")
			So(err, ShouldBeNil)

			So(flow.Logout(), ShouldBeNil)
			So(a.last(), ShouldEqual, MsgLoggedOut)
			So(indicator, ShouldEqual, "Not signed in")

			next := session.New(store.Open(storePath))
			So(next.Load().IsAbsent(), ShouldBeTrue)
			So(next.Status().Text(), ShouldEqual, "Not signed in")
		})

		Reset(filesystem.SetOsFs)
	})

	Convey("Given an unreachable service", t, func() {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		a := &alerts{}
		flow := New(network.NewResource(url, nil), a, nil)

		Convey("The transport error is shown", func() {
			done, err := flow.Submit(ctx, "ada", "secret")
			So(done, ShouldBeFalse)
			So(network.IsNetworkError(err), ShouldBeTrue)
			So(a.last(), ShouldStartWith, "Error: ")
		})
	})
}
