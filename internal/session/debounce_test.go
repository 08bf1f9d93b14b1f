package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_ZeroDelayIsSynchronous(t *testing.T) {
	d := newDebouncer(0)
	ran := false
	d.trigger(func() { ran = true })
	if !ran {
		t.Fatal("zero-delay trigger must run inline")
	}
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	var got atomic.Int32
	for i := int32(1); i <= 3; i++ {
		v := i
		d.trigger(func() { got.Store(v) })
	}
	time.Sleep(120 * time.Millisecond)
	if got.Load() != 3 {
		t.Fatalf("ran callback %d, want only the last (3)", got.Load())
	}
}

func TestDebouncer_FlushRunsPendingOnce(t *testing.T) {
	d := newDebouncer(time.Minute)
	var runs atomic.Int32
	d.trigger(func() { runs.Add(1) })
	d.flush()
	if runs.Load() != 1 {
		t.Fatalf("flush ran %d times, want 1", runs.Load())
	}
	// flushed work must not fire again from the stale timer
	d.flush()
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != 1 {
		t.Fatalf("callback re-ran after flush: %d", runs.Load())
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var runs atomic.Int32
	d.trigger(func() { runs.Add(1) })
	d.stop()
	time.Sleep(80 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatalf("stopped callback still ran %d times", runs.Load())
	}
}
