package refine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounce_NoImmediateExecution(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Call("a1")
	assert.Empty(t, rec.calls)

	sch.Advance(testDelay - time.Millisecond)
	assert.Empty(t, rec.calls)

	sch.Advance(time.Millisecond)
	assert.Equal(t, []string{"a1"}, rec.calls)
}

func TestDebounce_ResetOnRepeatedCalls(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Call("a1") // t=0
	sch.Advance(50 * time.Millisecond)
	db.Call("a2") // t=50
	sch.Advance(50 * time.Millisecond)
	db.Call("a3") // t=100

	// Nothing may fire before t=200: 100ms after the *last* call.
	sch.Advance(99 * time.Millisecond) // t=199
	require.Empty(t, rec.calls)

	sch.Advance(time.Millisecond) // t=200
	assert.Equal(t, []string{"a3"}, rec.calls, "the last call's arguments win")

	sch.Advance(10 * testDelay)
	assert.Equal(t, []string{"a3"}, rec.calls, "exactly one execution")
}

func TestDebounce_Cancel(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Call("a1")
	db.Cancel()

	sch.Advance(10 * testDelay)
	assert.Empty(t, rec.calls)
}

func TestDebounce_CallAfterCancelResumes(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Call("a1")
	db.Cancel()
	db.Call("a2")

	sch.Advance(testDelay)
	assert.Equal(t, []string{"a2"}, rec.calls)
}

func TestDebounce_FiresAgainForLaterCalls(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Call("a1")
	sch.Advance(testDelay)
	db.Call("a2")
	sch.Advance(testDelay)
	assert.Equal(t, []string{"a1", "a2"}, rec.calls)
}

func TestDebounce_CancelIsIdempotent(t *testing.T) {
	sch := NewFakeScheduler(time.Unix(0, 0))
	rec := &recorder{}
	db := NewDebounce(sch, testDelay, rec.record)

	db.Cancel()
	db.Call("a1")
	db.Cancel()
	db.Cancel()

	sch.Advance(10 * testDelay)
	assert.Empty(t, rec.calls)
}
