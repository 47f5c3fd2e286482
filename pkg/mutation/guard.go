// Package mutation applies user actions to displayed state only after the
// server confirms them.
//
// Each action disables its control for one round trip and rejects a second
// submission while the first is pending. A failed action of any kind leaves
// the committed state exactly as it was.
package mutation

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("mutation: action already in progress")

// Control is the widget that triggers an action.
type Control interface {
	SetDisabled(disabled bool)
}

// ControlFunc adapts a function to Control.
type ControlFunc func(disabled bool)

func (f ControlFunc) SetDisabled(disabled bool) { f(disabled) }

// Guard serializes one action. The zero value is usable without a control.
type Guard struct {
	mu   sync.Mutex
	busy bool
	ctl  Control
}

func NewGuard(ctl Control) *Guard {
	return &Guard{ctl: ctl}
}

// Do runs fn with the control disabled. It returns ErrBusy without calling
// fn when another call is still running.
func (g *Guard) Do(fn func() error) error {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return ErrBusy
	}
	g.busy = true
	g.mu.Unlock()

	g.setDisabled(true)
	defer func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
		g.setDisabled(false)
	}()
	return fn()
}

func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

func (g *Guard) setDisabled(disabled bool) {
	if g.ctl != nil {
		g.ctl.SetDisabled(disabled)
	}
}
