package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceRunsDueTimersInOrder(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var order []string

	f.ScheduleOnce(30*time.Millisecond, func() { order = append(order, "b") })
	f.ScheduleOnce(10*time.Millisecond, func() { order = append(order, "a") })
	f.ScheduleOnce(50*time.Millisecond, func() { order = append(order, "c") })

	f.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, f.Pending())

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, f.Pending())
}

func TestFake_NowIsDeadlineInsideCallback(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFake(start)

	var seen time.Time
	f.ScheduleOnce(25*time.Millisecond, func() { seen = f.Now() })

	f.Advance(100 * time.Millisecond)
	assert.Equal(t, start.Add(25*time.Millisecond), seen)
	assert.Equal(t, start.Add(100*time.Millisecond), f.Now())
}

func TestFake_StopPreventsFiring(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	fired := false

	h := f.ScheduleOnce(10*time.Millisecond, func() { fired = true })
	require.True(t, h.Stop())
	assert.False(t, h.Stop(), "second stop reports the timer as already dead")

	f.Advance(time.Second)
	assert.False(t, fired)
}

func TestFake_StopAfterFireReturnsFalse(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	h := f.ScheduleOnce(10*time.Millisecond, func() {})

	f.Advance(20 * time.Millisecond)
	assert.False(t, h.Stop())
}

func TestFake_RearmDuringCallback(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var order []string

	f.ScheduleOnce(10*time.Millisecond, func() {
		order = append(order, "first")
		// Due at t=30, still inside the same Advance span.
		f.ScheduleOnce(20*time.Millisecond, func() { order = append(order, "second") })
	})

	f.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestFake_TieBreaksByArmingOrder(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var order []string

	f.ScheduleOnce(10*time.Millisecond, func() { order = append(order, "x") })
	f.ScheduleOnce(10*time.Millisecond, func() { order = append(order, "y") })

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"x", "y"}, order)
}

func TestWall_ScheduleOnce(t *testing.T) {
	s := Wall()
	ch := make(chan struct{})

	s.ScheduleOnce(time.Millisecond, func() { close(ch) })
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("wall timer did not fire")
	}
}

func TestWall_StopPreventsFiring(t *testing.T) {
	s := Wall()
	fired := make(chan struct{}, 1)

	h := s.ScheduleOnce(50*time.Millisecond, func() { fired <- struct{}{} })
	require.True(t, h.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(150 * time.Millisecond):
	}
}
