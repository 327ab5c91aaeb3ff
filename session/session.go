// Package session holds the signed-in identity of the current user.
//
// The identity is a username token kept in the durable store. There is no authentication
// here: the session only remembers who signed in and tells observers about it.
package session

import (
	"fmt"
	"sync"

	"github.com/colorcarnival/carnival/constant"
	"github.com/colorcarnival/carnival/key"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/store"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Status is what the login-status indicator shows.
type Status struct {
	Username mo.Option[string]
}

// Text renders the indicator label.
func (s Status) Text() string {
	if name, ok := s.Username.Get(); ok {
		return "Signed in as " + name
	}
	return "Not signed in"
}

// SignedIn reports whether a username is present.
func (s Status) SignedIn() bool {
	return s.Username.IsPresent()
}

// Observer receives the status after every load, set and clear.
type Observer func(Status)

// Session is the process-wide view of the stored identity.
type Session struct {
	mu        sync.Mutex
	store     *store.Store
	username  mo.Option[string]
	observers []Observer
}

// New creates a session over st. Nothing is read until Load.
func New(st *store.Store) *Session {
	return &Session{store: st}
}

var (
	defaultSession *Session
	defaultOnce    sync.Once
)

// Default returns the session over store.Default().
func Default() *Session {
	defaultOnce.Do(func() {
		defaultSession = New(store.Default())
	})
	return defaultSession
}

// OnChange registers an observer.
func (s *Session) OnChange(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Load reads the stored username. A read failure is logged and treated as signed out.
func (s *Session) Load() mo.Option[string] {
	s.mu.Lock()

	username, err := s.store.Get(constant.StoreKeyUsername)
	if err != nil {
		log.Warnf("loading session: %s", err)
		username = mo.None[string]()
	}
	if username.IsAbsent() {
		// older clients only wrote cc_user
		if user, err := s.store.Get(constant.StoreKeyUser); err == nil {
			username = user
		}
	}
	username = username.FlatMap(func(name string) mo.Option[string] {
		return mo.TupleToOption(name, name != "")
	})

	s.username = username
	observers, status := s.notifyLocked()
	s.mu.Unlock()

	notify(observers, status)
	return username
}

// Username returns the identity seen by the last Load, Set or Clear.
func (s *Session) Username() mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Status returns the current indicator state.
func (s *Session) Status() Status {
	return Status{Username: s.Username()}
}

// Set records username as signed in. A non-empty token is kept in the system keyring when
// session.keyring is enabled and in the store otherwise. Keyring failures are logged only.
func (s *Session) Set(username, token string) error {
	s.mu.Lock()

	values := map[string]string{
		constant.StoreKeyUsername: username,
		constant.StoreKeyUser:     username,
	}
	if token != "" {
		if viper.GetBool(key.SessionKeyring) {
			if err := saveToken(token); err != nil {
				log.Warnf("saving session token to keyring: %s", err)
			}
		} else {
			values[constant.StoreKeyToken] = token
		}
	}

	if err := s.store.Set(values); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}

	s.username = mo.Some(username)
	observers, status := s.notifyLocked()
	s.mu.Unlock()

	notify(observers, status)
	return nil
}

// Clear removes every session key in one write, then notifies observers.
// Observers never see a signed-in status once the keys are gone.
func (s *Session) Clear() error {
	s.mu.Lock()

	if err := s.store.Delete(constant.StoreKeyUsername, constant.StoreKeyUser, constant.StoreKeyToken); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear session: %w", err)
	}
	if viper.GetBool(key.SessionKeyring) {
		if err := deleteToken(); err != nil {
			log.Warnf("removing session token from keyring: %s", err)
		}
	}

	s.username = mo.None[string]()
	observers, status := s.notifyLocked()
	s.mu.Unlock()

	notify(observers, status)
	return nil
}

func (s *Session) notifyLocked() ([]Observer, Status) {
	return append([]Observer(nil), s.observers...), Status{Username: s.username}
}

func notify(observers []Observer, status Status) {
	for _, o := range observers {
		o(status)
	}
}
