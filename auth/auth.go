// Package auth signs users in and out of the color service.
//
// Signing in only records the username locally; the service is trusted to have checked
// the password.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/samber/lo"
)

// Alert messages.
const (
	MsgMissingFields = "Please fill in both fields!"
	MsgGenericError  = "Something went wrong!"
	MsgRegistered    = "Account created! You can sign in now."
	MsgLoggedOut     = "You’ve been logged out 🎈"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	Login Mode = iota
	Register
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Login {
		return Register
	}
	return Login
}

// Title is the form heading.
func (m Mode) Title() string {
	return lo.Ternary(m == Login, "Sign In", "Create Account")
}

// SubmitLabel is the submit control text.
func (m Mode) SubmitLabel() string {
	return lo.Ternary(m == Login, "Sign In", "Register")
}

// ToggleLabel is the mode switch text.
func (m Mode) ToggleLabel() string {
	return lo.Ternary(m == Login, "Need an account?", "Already have one?")
}

// Endpoint is the path credentials are posted to.
func (m Mode) Endpoint() string {
	return lo.Ternary(m == Login, "/api/login", "/api/register")
}

func (m Mode) String() string {
	return lo.Ternary(m == Login, "login", "register")
}

// Session is where a signed-in identity is recorded.
type Session interface {
	Set(username, token string) error
	Clear() error
}

// Credentials is the sign in and registration payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Flow is the sign in form state.
type Flow struct {
	caller  network.Caller
	alerts  alert.Alerter
	session Session

	mu   sync.Mutex
	mode Mode
}

// New creates a flow in login mode.
func New(caller network.Caller, alerts alert.Alerter, session Session) *Flow {
	return &Flow{caller: caller, alerts: alerts, session: session, mode: Login}
}

// Mode returns the current mode.
func (f *Flow) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode switches to m.
func (f *Flow) SetMode(m Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
}

// Toggle switches between login and register.
func (f *Flow) Toggle() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = f.mode.Toggle()
	return f.mode
}

// Submit posts the trimmed credentials for the current mode. It reports whether the form
// completed, so the caller can close it and clear its fields.
// Registering never signs in; it switches the form to login mode.
func (f *Flow) Submit(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		f.alerts.Show(MsgMissingFields, false)
		return false, nil
	}

	mode := f.Mode()

	resp, err := f.caller.Call(ctx, http.MethodPost, mode.Endpoint(), Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		f.alerts.Show("Error: "+cause(err).Error(), false)
		return false, err
	}

	if !resp.OK {
		f.alerts.Show(lo.CoalesceOrEmpty(resp.Error(), MsgGenericError), false)
		return false, nil
	}

	if mode == Register {
		f.alerts.Show(MsgRegistered, true)
		f.SetMode(Login)
		return true, nil
	}

	var body struct {
		Token string `json:"token"`
	}
	if resp.Body != nil {
		if err := resp.Decode(&body); err != nil {
			log.Debugf("login response without token: %s", err)
		}
	}

	if err := f.session.Set(username, body.Token); err != nil {
		f.alerts.Show("Error: "+err.Error(), false)
		return false, fmt.Errorf("login: %w", err)
	}

	f.alerts.Show(fmt.Sprintf("Welcome back, %s!", username), true)
	return true, nil
}

// Logout forgets the signed-in identity.
func (f *Flow) Logout() error {
	if err := f.session.Clear(); err != nil {
		f.alerts.Show("Error: "+err.Error(), false)
		return err
	}
	f.alerts.Show(MsgLoggedOut, true)
	return nil
}

// cause strips the request context from a transport failure.
func cause(err error) error {
	var netErr *network.Error
	if errors.As(err, &netErr) && netErr.Err != nil {
		return netErr.Err
	}
	return err
}
