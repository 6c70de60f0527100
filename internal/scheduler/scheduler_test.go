package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAfterRunsOnce(t *testing.T) {
	r := New(zap.NewNop())
	var n atomic.Int32

	r.After("test", 10*time.Millisecond, func() { n.Add(1) })

	time.Sleep(50 * time.Millisecond)
	if got := n.Load(); got != 1 {
		t.Fatalf("task ran %d times, want 1", got)
	}
	if r.Len() != 0 {
		t.Fatalf("registry still holds %d tasks after firing", r.Len())
	}
}

func TestCancelPreventsRun(t *testing.T) {
	r := New(zap.NewNop())
	var n atomic.Int32

	id := r.After("test", 20*time.Millisecond, func() { n.Add(1) })
	if !r.Cancel(id) {
		t.Fatal("Cancel returned false for a pending task")
	}

	time.Sleep(60 * time.Millisecond)
	if got := n.Load(); got != 0 {
		t.Fatalf("cancelled task ran %d times", got)
	}
}

func TestCancelUnknownID(t *testing.T) {
	r := New(zap.NewNop())
	if r.Cancel(42) {
		t.Fatal("Cancel returned true for unknown ID")
	}
}

func TestShutdownStopsEverything(t *testing.T) {
	r := New(zap.NewNop())
	var n atomic.Int32

	for i := 0; i < 5; i++ {
		r.After("test", 20*time.Millisecond, func() { n.Add(1) })
	}
	r.Shutdown()

	time.Sleep(60 * time.Millisecond)
	if got := n.Load(); got != 0 {
		t.Fatalf("%d tasks ran after Shutdown", got)
	}
	if r.Len() != 0 {
		t.Fatalf("registry holds %d tasks after Shutdown", r.Len())
	}
}

func TestPanickingTaskIsRecovered(t *testing.T) {
	r := New(zap.NewNop())
	var n atomic.Int32

	r.After("bad", 5*time.Millisecond, func() { panic("boom") })
	r.After("good", 15*time.Millisecond, func() { n.Add(1) })

	time.Sleep(60 * time.Millisecond)
	if got := n.Load(); got != 1 {
		t.Fatalf("later task ran %d times, want 1", got)
	}
}
