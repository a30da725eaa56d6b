package game

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDeploySabotageKinds(t *testing.T) {
	cases := []struct {
		kind     SabotageKind
		duration time.Duration
		radius   float64
	}{
		{SabotageDecoyChallenge, 10 * time.Minute, 30},
		{SabotageLocationScramble, 2 * time.Minute, 50},
		{SabotagePointDrain, 5 * time.Minute, 30},
		{SabotageChallengeIntercept, 3 * time.Minute, 40},
		{SabotageSpeedTrap, 2 * time.Minute, 30},
	}
	for i, tc := range cases {
		_, g := newTestGame(t)
		now := testNow.Add(time.Duration(i) * time.Hour)
		s, err := g.DeploySabotage("alice", tc.kind, testBase.Lat, testBase.Lng, now)
		if err != nil {
			t.Fatalf("%s: %v", tc.kind, err)
		}
		if s.Radius != tc.radius {
			t.Fatalf("%s: expected radius %f, got %f", tc.kind, tc.radius, s.Radius)
		}
		if !s.ExpiresAt.Equal(now.Add(tc.duration)) {
			t.Fatalf("%s: expected expiry %v, got %v", tc.kind, now.Add(tc.duration), s.ExpiresAt)
		}
	}
}

func TestDeploySabotagePayloads(t *testing.T) {
	_, g := newTestGame(t)
	s, err := g.DeploySabotage("alice", SabotagePointDrain, testBase.Lat, testBase.Lng, testNow)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if s.Payload["points"] != 50 {
		t.Fatalf("point_drain should carry points=50, got %+v", s.Payload)
	}

	s, err = g.DeploySabotage("bob", SabotageSpeedTrap, testBase.Lat, testBase.Lng, testNow)
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if s.Payload["slowdown"] != 0.5 {
		t.Fatalf("speed_trap should carry slowdown=0.5, got %+v", s.Payload)
	}
}

func TestDeploySabotageUnknownKind(t *testing.T) {
	_, g := newTestGame(t)
	if _, err := g.DeploySabotage("alice", "emp_blast", testBase.Lat, testBase.Lng, testNow); !errors.Is(err, ErrInvalidSabotageType) {
		t.Fatalf("expected ErrInvalidSabotageType, got %v", err)
	}
}

func TestDeploySabotageCooldown(t *testing.T) {
	_, g := newTestGame(t)
	if _, err := g.DeploySabotage("alice", SabotageDecoyChallenge, testBase.Lat, testBase.Lng, testNow); err != nil {
		t.Fatalf("first deploy: %v", err)
	}

	_, err := g.DeploySabotage("alice", SabotageSpeedTrap, testBase.Lat, testBase.Lng, testNow.Add(time.Minute))
	var cd *CooldownError
	if !errors.As(err, &cd) {
		t.Fatalf("expected *CooldownError, got %v", err)
	}
	if cd.Remaining != 4*time.Minute {
		t.Fatalf("expected 4m remaining, got %s", cd.Remaining)
	}

	// another player is unaffected
	if _, err := g.DeploySabotage("bob", SabotageSpeedTrap, testBase.Lat, testBase.Lng, testNow.Add(time.Minute)); err != nil {
		t.Fatalf("bob's deploy: %v", err)
	}

	// and the window eventually opens again
	if _, err := g.DeploySabotage("alice", SabotageSpeedTrap, testBase.Lat, testBase.Lng, testNow.Add(6*time.Minute)); err != nil {
		t.Fatalf("deploy after cooldown: %v", err)
	}
}

func TestConcurrentDeploysExactlyOneSucceeds(t *testing.T) {
	_, g := newTestGame(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.DeploySabotage("alice", SabotageDecoyChallenge, testBase.Lat, testBase.Lng, testNow)
		}(i)
	}
	wg.Wait()

	successes, cooldowns := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrCooldown):
			cooldowns++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || cooldowns != 1 {
		t.Fatalf("expected one success and one cooldown, got %d/%d", successes, cooldowns)
	}
}

func TestActiveSabotagesVisibleOnlyToDeployer(t *testing.T) {
	_, g := newTestGame(t)
	if _, err := g.DeploySabotage("alice", SabotageDecoyChallenge, testBase.Lat, testBase.Lng, testNow); err != nil {
		t.Fatalf("deploy: %v", err)
	}

	if got := g.ActiveSabotages("alice", testNow); len(got) != 1 {
		t.Fatalf("deployer should see their sabotage, got %d", len(got))
	}
	if got := g.ActiveSabotages("bob", testNow); len(got) != 0 {
		t.Fatalf("other players must not see it, got %d", len(got))
	}
}

func TestActiveSabotagesExpire(t *testing.T) {
	_, g := newTestGame(t)
	// location_scramble lasts two minutes
	if _, err := g.DeploySabotage("alice", SabotageLocationScramble, testBase.Lat, testBase.Lng, testNow); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if got := g.ActiveSabotages("alice", testNow.Add(time.Minute)); len(got) != 1 {
		t.Fatalf("should still be live at 1m, got %d", len(got))
	}
	if got := g.ActiveSabotages("alice", testNow.Add(3*time.Minute)); len(got) != 0 {
		t.Fatalf("should have lapsed at 3m, got %d", len(got))
	}
}

func TestDeploySabotageIncrementsCounterAndEmits(t *testing.T) {
	_, g := newTestGame(t)
	sink := &recordingSink{}
	g.sink = sink

	if _, err := g.DeploySabotage("alice", SabotageSpeedTrap, testBase.Lat, testBase.Lng, testNow); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	p, _ := g.Player("alice")
	if p.SabotagesDeployed != 1 {
		t.Fatalf("expected counter 1, got %d", p.SabotagesDeployed)
	}
	evs := sink.all()
	if len(evs) != 1 || evs[0].Kind != EventSabotageDeployed {
		t.Fatalf("expected sabotage_deployed event, got %+v", evs)
	}
	if evs[0].Payload["sabotageKind"] != string(SabotageSpeedTrap) {
		t.Fatalf("event should carry the kind, got %+v", evs[0].Payload)
	}
}
