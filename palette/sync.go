package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/colorcarnival/carnival/alert"
	"github.com/colorcarnival/carnival/log"
	"github.com/colorcarnival/carnival/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	pathPalettes = "/api/palettes"

	confirmDelete = "Delete this palette?"
)

// Alert messages.
const (
	MsgEnterName      = "Enter a palette name 💕"
	MsgSaveFailed     = "Error saving palette"
	MsgSaved          = "Palette saved! 🎉"
	MsgNetworkError   = "Network error 💔"
	MsgNoSelection    = "No palette selected"
	MsgDeleteFailed   = "Delete failed"
	MsgDeleted        = "Palette deleted 🗑️"
	MsgColorDeleted   = "Color deleted"
	MsgLoadFailed     = "Error loading palettes"
	msgColorDelFailed = "Color delete failed"
)

var (
	// ErrInFlight is returned when the same action is already running.
	ErrInFlight = errors.New("action already in progress")
	// ErrUnknownPalette is returned when selecting an id missing from the last fetched list.
	ErrUnknownPalette = errors.New("palette is not in the list")
	// ErrRejected wraps a mutation the service answered with a non-2xx status.
	ErrRejected = errors.New("rejected by the service")
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// State is a consistent copy of what the palette page shows.
type State struct {
	// Options in server order. Empty when the placeholder is shown.
	Options []Option
	// Placeholder is true after a load returned no palettes.
	Placeholder bool
	// Selected is always the id of an entry in Options, or absent.
	Selected mo.Option[int]
	// Colors of the selected palette.
	Colors []Color
}

// SelectorLabel returns the text of the selected entry, or the placeholder.
func (s State) SelectorLabel() string {
	id, ok := s.Selected.Get()
	if !ok {
		if s.Placeholder {
			return Placeholder
		}
		return ""
	}
	option, _ := lo.Find(s.Options, func(o Option) bool { return o.ID == id })
	return option.Name
}

// Synchronizer owns the palette list, the selection and the colors view.
type Synchronizer struct {
	caller  network.Caller
	alerts  alert.Alerter
	confirm Confirmer

	group singleflight.Group

	mu       sync.Mutex
	state    State
	inflight map[string]bool
	// colorsGen orders colors view loads; only the latest one renders.
	colorsGen uint64
}

// New creates a synchronizer. Nothing is fetched until Load.
func New(caller network.Caller, alerts alert.Alerter, confirm Confirmer) *Synchronizer {
	return &Synchronizer{
		caller:   caller,
		alerts:   alerts,
		confirm:  confirm,
		inflight: make(map[string]bool),
	}
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Options:     append([]Option(nil), s.state.Options...),
		Placeholder: s.state.Placeholder,
		Selected:    s.state.Selected,
		Colors:      append([]Color(nil), s.state.Colors...),
	}
}

func (s *Synchronizer) begin(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[action] {
		log.With(logrus.Fields{"action": action}).Debug("rejected, already in flight")
		return false
	}
	s.inflight[action] = true
	return true
}

func (s *Synchronizer) end(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, action)
}

// fetch requests the full palette list. Concurrent callers share one request.
// A 2xx body that is not an array counts as an empty list.
// After a mutation call forgetList first, so the refresh never joins a request sent before it.
func (s *Synchronizer) fetch(ctx context.Context) ([]Palette, error) {
	v, err, _ := s.group.Do(pathPalettes, func() (any, error) {
		resp, err := s.caller.Call(ctx, http.MethodGet, pathPalettes, nil)
		if err != nil {
			return nil, err
		}
		if !resp.OK {
			return nil, fmt.Errorf("list palettes: status %d", resp.Status)
		}

		if len(resp.Body) == 0 || resp.Body[0] != '[' {
			return []Palette{}, nil
		}

		var list []Palette
		if err := json.Unmarshal(resp.Body, &list); err != nil {
			return nil, fmt.Errorf("decode palettes: %w", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Palette), nil
}

// forgetList detaches any list request in flight; the next fetch sends a new one.
func (s *Synchronizer) forgetList() {
	s.group.Forget(pathPalettes)
}

// resolveSelection picks the requested id if listed, else the previous id if still listed,
// else the last entry.
func resolveSelection(ids []int, requested, previous mo.Option[int]) mo.Option[int] {
	if len(ids) == 0 {
		return mo.None[int]()
	}
	if id, ok := requested.Get(); ok && lo.Contains(ids, id) {
		return requested
	}
	if id, ok := previous.Get(); ok && lo.Contains(ids, id) {
		return previous
	}
	return mo.Some(ids[len(ids)-1])
}

// Load re-fetches the palette list and resolves the selection, preferring requested.
// It is the only operation that triggers a colors view load on its own.
// On failure the selector is left as it was.
func (s *Synchronizer) Load(ctx context.Context, requested mo.Option[int]) error {
	list, err := s.fetch(ctx)
	if err != nil {
		log.Errorf("loading palettes: %s", err)
		s.alerts.Show(MsgLoadFailed, false)
		return err
	}

	s.mu.Lock()
	if len(list) == 0 {
		s.state.Options = nil
		s.state.Placeholder = true
		s.state.Selected = mo.None[int]()
		s.state.Colors = nil
		s.colorsGen++
		s.mu.Unlock()
		return nil
	}

	s.state.Options = lo.Map(list, func(p Palette, _ int) Option {
		return Option{ID: p.ID, Name: p.Name}
	})
	s.state.Placeholder = false
	ids := lo.Map(list, func(p Palette, _ int) int { return p.ID })
	s.state.Selected = resolveSelection(ids, requested, s.state.Selected)
	s.mu.Unlock()

	return s.LoadColors(ctx)
}

// LoadColors renders the colors of the selected palette from a fresh list.
// A selection missing from that list renders nothing.
func (s *Synchronizer) LoadColors(ctx context.Context) error {
	s.mu.Lock()
	s.colorsGen++
	gen := s.colorsGen
	s.state.Colors = nil
	id, ok := s.state.Selected.Get()
	s.mu.Unlock()

	if !ok {
		return nil
	}

	list, err := s.fetch(ctx)
	if err != nil {
		log.Errorf("loading palette colors: %s", err)
		s.alerts.Show(MsgLoadFailed, false)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// a newer load started while this one was fetching
	if gen != s.colorsGen {
		return nil
	}

	if p, found := lo.Find(list, func(p Palette) bool { return p.ID == id }); found {
		s.state.Colors = p.Colors
	}
	return nil
}

// Select changes the selection to id and renders its colors.
func (s *Synchronizer) Select(ctx context.Context, id int) error {
	s.mu.Lock()
	if !lo.ContainsBy(s.state.Options, func(o Option) bool { return o.ID == id }) {
		s.mu.Unlock()
		return fmt.Errorf("select %d: %w", id, ErrUnknownPalette)
	}
	s.state.Selected = mo.Some(id)
	s.mu.Unlock()

	return s.LoadColors(ctx)
}

// Create saves a palette named name and reloads the list selecting it.
// It reports whether the palette was saved, so the caller can clear its input.
func (s *Synchronizer) Create(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.alerts.Show(MsgEnterName, false)
		return false, nil
	}

	if !s.begin("create") {
		return false, ErrInFlight
	}
	defer s.end("create")

	resp, err := s.caller.Call(ctx, http.MethodPost, pathPalettes, map[string]string{"name": name})
	if err != nil {
		s.alerts.Show(MsgNetworkError, false)
		return false, err
	}

	var created struct {
		ID    *int   `json:"id"`
		Error string `json:"error"`
	}
	// a body without an id is handled below
	_ = resp.Decode(&created)

	if !resp.OK && created.ID == nil {
		s.alerts.Show(lo.Ternary(created.Error != "", created.Error, MsgSaveFailed), false)
		return false, nil
	}

	s.alerts.Show(MsgSaved, true)

	requested := mo.None[int]()
	if created.ID != nil {
		requested = mo.Some(*created.ID)
	}
	s.forgetList()
	return true, s.Load(ctx, requested)
}

// Delete removes the selected palette after confirmation and reloads the list
// without forcing a selection.
func (s *Synchronizer) Delete(ctx context.Context) error {
	s.mu.Lock()
	id, ok := s.state.Selected.Get()
	s.mu.Unlock()

	if !ok {
		s.alerts.Show(MsgNoSelection, false)
		return nil
	}

	approved, err := s.confirm.Confirm(confirmDelete)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !approved {
		return nil
	}

	if !s.begin("delete") {
		return ErrInFlight
	}
	defer s.end("delete")

	resp, err := s.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", pathPalettes, id), nil)
	if err != nil {
		s.alerts.Show(MsgNetworkError, false)
		return err
	}
	if !resp.OK {
		s.alerts.Show(MsgDeleteFailed, false)
		return fmt.Errorf("delete palette %d: status %d: %w", id, resp.Status, ErrRejected)
	}

	s.alerts.Show(MsgDeleted, true)
	s.forgetList()
	return s.Load(ctx, mo.None[int]())
}

// DeleteColor removes one color of paletteID, then refreshes only the colors view.
func (s *Synchronizer) DeleteColor(ctx context.Context, paletteID, colorID int) error {
	action := fmt.Sprintf("color:%d:%d", paletteID, colorID)
	if !s.begin(action) {
		return ErrInFlight
	}
	defer s.end(action)

	resp, err := s.caller.Call(ctx, http.MethodDelete, fmt.Sprintf("%s/%d/colors/%d", pathPalettes, paletteID, colorID), nil)
	if err != nil {
		s.alerts.Show(MsgNetworkError, false)
		return err
	}
	s.forgetList()
	if !resp.OK {
		s.alerts.Show(lo.CoalesceOrEmpty(resp.Error(), msgColorDelFailed), false)
		rejected := fmt.Errorf("delete color %d of palette %d: status %d: %w", colorID, paletteID, resp.Status, ErrRejected)
		return errors.Join(rejected, s.LoadColors(ctx))
	}

	s.alerts.Show(MsgColorDeleted, true)
	return s.LoadColors(ctx)
}
