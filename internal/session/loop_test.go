package session

import (
	"context"
	"sync"
	"testing"

	"github.com/sultanahmad/atm-sim/internal/ledger"
)

func newLoop(t *testing.T) *Loop {
	t.Helper()
	bank, err := ledger.New([]ledger.SeedAccount{
		{Number: "123456789", PIN: "1234", Balance: 150000},
	}, 3)
	if err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return NewLoop(New(bank, &fakePrompts{confirmAnswer: true}))
}

func TestLoopSerializesConcurrentSubmits(t *testing.T) {
	loop := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := loop.Submit(ctx, Digit('1')); err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	d, err := loop.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	// All five presses must have landed; none lost to a race.
	if d.Input != "11111" {
		t.Fatalf("input = %q, want 11111", d.Input)
	}
}

func TestLoopSnapshotDoesNotMutate(t *testing.T) {
	loop := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	if _, err := loop.Submit(ctx, Digit('7')); err != nil {
		t.Fatalf("submit: %v", err)
	}
	for i := 0; i < 3; i++ {
		d, err := loop.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if d.Input != "7" {
			t.Fatalf("input = %q, want 7", d.Input)
		}
	}
}

func TestLoopSubmitAfterCancel(t *testing.T) {
	loop := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loop.Submit(ctx, Digit('1')); err == nil {
		t.Fatal("submit on a cancelled context must fail")
	}
}
