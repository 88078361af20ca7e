package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunAbsorbsFailures(t *testing.T) {
	r := NewRunner(2)
	boom := errors.New("boom")

	ops := []Operation{
		{ItemID: "a", Run: func(ctx context.Context) error { return nil }},
		{ItemID: "b", Run: func(ctx context.Context) error { return boom }},
		{ItemID: "c", Run: func(ctx context.Context) error { return nil }},
	}

	results := r.Run(context.Background(), ops)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, id := range []string{"a", "b", "c"} {
		if results[i].ItemID != id {
			t.Fatalf("results[%d].ItemID = %q, want %q (input order)", i, results[i].ItemID, id)
		}
	}
	if !errors.Is(results[1].Err, boom) {
		t.Fatalf("results[1].Err = %v, want boom", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatal("one failing item must not poison its neighbors")
	}

	failed := Failed(results)
	if len(failed) != 1 || failed[0].ItemID != "b" {
		t.Fatalf("Failed = %v, want just b", failed)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	r := NewRunner(2)

	var active, peak atomic.Int32
	op := func(ctx context.Context) error {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		active.Add(-1)
		return nil
	}

	ops := make([]Operation, 16)
	for i := range ops {
		ops[i] = Operation{ItemID: "x", Run: op}
	}
	r.Run(context.Background(), ops)

	if got := peak.Load(); got > 2 {
		t.Fatalf("peak concurrency = %d, want <= 2", got)
	}
}

func TestRunCancelledContextSkipsUnscheduled(t *testing.T) {
	r := NewRunner(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	results := r.Run(ctx, []Operation{
		{ItemID: "a", Run: func(ctx context.Context) error { ran = true; return nil }},
	})

	if ran {
		t.Fatal("operation ran despite cancelled context")
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("results[0].Err = %v, want context.Canceled", results[0].Err)
	}
}

func TestNewRunnerMinimumWorkers(t *testing.T) {
	r := NewRunner(0)
	results := r.Run(context.Background(), []Operation{
		{ItemID: "a", Run: func(ctx context.Context) error { return nil }},
	})
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %v", results)
	}
}
