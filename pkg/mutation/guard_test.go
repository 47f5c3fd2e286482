package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	states []bool
}

func (r *recorder) SetDisabled(disabled bool) {
	r.states = append(r.states, disabled)
}

func TestGuard_DisablesAroundCall(t *testing.T) {
	ctl := &recorder{}
	g := NewGuard(ctl)

	err := g.Do(func() error {
		assert.True(t, g.Busy())
		assert.Equal(t, []bool{true}, ctl.states)
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, g.Busy())
	assert.Equal(t, []bool{true, false}, ctl.states)
}

func TestGuard_ReenablesOnError(t *testing.T) {
	ctl := &recorder{}
	g := NewGuard(ctl)
	boom := errors.New("boom")

	assert.ErrorIs(t, g.Do(func() error { return boom }), boom)
	assert.Equal(t, []bool{true, false}, ctl.states)
	assert.False(t, g.Busy())
}

func TestGuard_RejectsOverlap(t *testing.T) {
	var g Guard
	calls := 0
	err := g.Do(func() error {
		calls++
		return g.Do(func() error {
			calls++
			return nil
		})
	})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, calls)
}

func TestControlFunc(t *testing.T) {
	var got []bool
	g := NewGuard(ControlFunc(func(d bool) { got = append(got, d) }))
	_ = g.Do(func() error { return nil })
	assert.Equal(t, []bool{true, false}, got)
}
