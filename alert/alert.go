// Package alert implements the process-wide, single-slot notification box shared by every feature.
//
// A Show replaces whatever is displayed and (re)starts the hide timer, so rapid calls never
// flicker: the box hides exactly once, Delay after the last Show.
package alert

import (
	"slices"
	"sync"
	"time"
)

// Delay is how long a message stays visible after the most recent Show.
const Delay = 2500 * time.Millisecond

// Alerter is anything that can surface a transient message to the user.
type Alerter interface {
	Show(message string, isSuccess bool)
}

// Alert is the content of the box.
type Alert struct {
	Message string
	Success bool
	// Seq increases with every Show.
	Seq uint64
}

// Listener is notified after every show and hide.
type Listener func(a Alert, visible bool)

// Box is a single-slot, auto-expiring message surface. The zero value is not usable; see New.
type Box struct {
	mu        sync.Mutex
	delay     time.Duration
	current   Alert
	visible   bool
	timer     *time.Timer
	listeners map[int]Listener
	nextID    int
}

// New creates a box hiding its messages after Delay.
func New() *Box {
	return newBox(Delay)
}

func newBox(delay time.Duration) *Box {
	return &Box{
		delay:     delay,
		listeners: make(map[int]Listener),
	}
}

var defaultBox = New()

// Default returns the process-wide box.
func Default() *Box {
	return defaultBox
}

// Show displays message on the process-wide box.
func Show(message string, isSuccess bool) {
	defaultBox.Show(message, isSuccess)
}

// Show replaces the displayed message and restarts the hide timer.
func (b *Box) Show(message string, isSuccess bool) {
	b.mu.Lock()
	b.current = Alert{
		Message: message,
		Success: isSuccess,
		Seq:     b.current.Seq + 1,
	}
	b.visible = true

	if b.timer != nil {
		b.timer.Stop()
	}
	seq := b.current.Seq
	b.timer = time.AfterFunc(b.delay, func() { b.hide(seq) })

	shown := b.current
	listeners := b.snapshotListeners()
	b.mu.Unlock()

	for _, l := range listeners {
		l(shown, true)
	}
}

// hide clears the box if no Show happened since the timer for seq was armed.
// A timer that fired while a newer Show held the lock finds a different seq and does nothing.
func (b *Box) hide(seq uint64) {
	b.mu.Lock()
	if !b.visible || b.current.Seq != seq {
		b.mu.Unlock()
		return
	}
	b.visible = false
	b.timer = nil

	hidden := b.current
	listeners := b.snapshotListeners()
	b.mu.Unlock()

	for _, l := range listeners {
		l(hidden, false)
	}
}

// Current returns the last shown alert and whether it is still visible.
func (b *Box) Current() (Alert, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.visible
}

// Subscribe registers l and returns a function removing it.
func (b *Box) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = l

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

func (b *Box) snapshotListeners() []Listener {
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = b.listeners[id]
	}
	return out
}
