package game

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCooldownLedgerConsume(t *testing.T) {
	l := newCooldownLedger()

	ok, _ := l.tryConsume("alice", "sabotage", testNow, 5*time.Minute)
	if !ok {
		t.Fatal("first use should be permitted")
	}

	ok, remaining := l.tryConsume("alice", "sabotage", testNow.Add(2*time.Minute), 5*time.Minute)
	if ok {
		t.Fatal("use inside the window should be denied")
	}
	if remaining != 3*time.Minute {
		t.Fatalf("expected 3m remaining, got %s", remaining)
	}

	// denial must not have reset the window
	ok, _ = l.tryConsume("alice", "sabotage", testNow.Add(5*time.Minute), 5*time.Minute)
	if !ok {
		t.Fatal("use after the window should be permitted")
	}
}

func TestCooldownLedgerIsolation(t *testing.T) {
	l := newCooldownLedger()
	l.tryConsume("alice", "sabotage", testNow, 5*time.Minute)

	if ok, _ := l.tryConsume("bob", "sabotage", testNow, 5*time.Minute); !ok {
		t.Fatal("other players are not throttled")
	}
	if ok, _ := l.tryConsume("alice", "stealth", testNow, 10*time.Minute); !ok {
		t.Fatal("other actions are not throttled")
	}
}

func TestStealthToggle(t *testing.T) {
	_, g := newTestGame(t)

	res, err := g.ToggleStealth("alice", testNow)
	if err != nil {
		t.Fatalf("stealth should activate: %v", err)
	}
	if !res.Active {
		t.Fatal("expected active")
	}
	if !res.Until.Equal(testNow.Add(2 * time.Minute)) {
		t.Fatalf("expected 2m stealth, got %v", res.Until)
	}

	// toggling off while active is free
	res, err = g.ToggleStealth("alice", testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if res.Active {
		t.Fatal("expected inactive after toggle off")
	}

	// but reactivating inside the 10 minute cooldown is denied
	_, err = g.ToggleStealth("alice", testNow.Add(2*time.Minute))
	if !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected cooldown, got %v", err)
	}
	var cd *CooldownError
	if !errors.As(err, &cd) {
		t.Fatalf("expected *CooldownError, got %T", err)
	}
	if cd.Remaining != 8*time.Minute {
		t.Fatalf("expected 8m remaining, got %s", cd.Remaining)
	}

	// and works again once the cooldown lapses
	res, err = g.ToggleStealth("alice", testNow.Add(11*time.Minute))
	if err != nil {
		t.Fatalf("stealth after cooldown: %v", err)
	}
	if !res.Active {
		t.Fatal("expected active after cooldown lapse")
	}
}

func TestStealthEmitsEventOnActivationOnly(t *testing.T) {
	_, g := newTestGame(t)
	sink := &recordingSink{}
	g.sink = sink

	g.ToggleStealth("alice", testNow)
	g.ToggleStealth("alice", testNow.Add(time.Minute)) // off

	evs := sink.all()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].Kind != EventStealthActivated || evs[0].ActorID != "alice" {
		t.Fatalf("unexpected event: %+v", evs[0])
	}
}

func TestConcurrentStealthOneWinner(t *testing.T) {
	_, g := newTestGame(t)
	sink := &recordingSink{}
	g.sink = sink

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.ToggleStealth("alice", testNow)
		}(i)
	}
	wg.Wait()

	// first call activates; every later one sees active stealth and
	// toggles it off, or gets throttled. The ledger must never grant
	// two activations inside one window.
	activations := 0
	for _, err := range errs {
		if err == nil {
			activations++
		}
	}
	if activations == 0 {
		t.Fatal("at least the first toggle should succeed")
	}
	p, _ := g.Player("alice")
	if p.StealthUntil.After(testNow.Add(2 * time.Minute)) {
		t.Fatalf("stealth window must not extend past one activation: %v", p.StealthUntil)
	}
	if got := len(sink.all()); got != 1 {
		t.Fatalf("exactly one activation may land inside the window, got %d events", got)
	}
}
