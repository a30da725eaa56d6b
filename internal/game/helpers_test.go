package game

import (
	"math"
	"sync"
	"testing"
	"time"
)

// Fixed test clock: noon UTC, outside any night-time zone window.
var testNow = time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

var testBase = LatLng{Lat: 51.0504, Lng: 13.7373}

// latOffsetMeters converts a ground distance into a latitude offset.
func latOffsetMeters(m float64) float64 {
	return m * 180 / (math.Pi * earthRadiusMeters)
}

// newTestGame builds an active game with alice as the hunter and bob
// and carol hunted, everyone standing at testBase.
func newTestGame(t *testing.T) (*Arena, *GameCtx) {
	t.Helper()
	arena := NewArena()
	g := arena.CreateGame("hunt-1", testNow)
	for _, id := range []string{"alice", "bob", "carol"} {
		if _, err := g.Join(id, testNow); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		if err := g.UpdateLocation(id, testBase.Lat, testBase.Lng, testNow); err != nil {
			t.Fatalf("locate %s: %v", id, err)
		}
	}
	return arena, g
}

// setScore adjusts a player's score directly for scenario setup.
func setScore(t *testing.T, g *GameCtx, playerID string, score int) {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.players[playerID]
	if p == nil {
		t.Fatalf("no such player %s", playerID)
	}
	p.Score = score
}

// forceRole flips a player's role directly, bypassing the protocol.
func forceRole(t *testing.T, g *GameCtx, playerID string, role Role) {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.players[playerID]
	if p == nil {
		t.Fatalf("no such player %s", playerID)
	}
	p.Role = role
}

// recordingSink collects events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) Record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
