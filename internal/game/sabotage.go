package game

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DeploySabotage drops a time-boxed area effect at the given position.
// One deployment per deployer per five minutes; the per-kind lifetime,
// radius, and payload come from the fixed spec table.
func (g *GameCtx) DeploySabotage(deployerID string, kind SabotageKind, lat, lng float64, now time.Time) (*Sabotage, error) {
	spec, known := sabotageSpecs[kind]
	if !known {
		return nil, ErrInvalidSabotageType
	}

	g.mu.Lock()
	if !g.active() {
		g.mu.Unlock()
		return nil, ErrGameNotActive
	}
	p := g.players[deployerID]
	if p == nil {
		g.mu.Unlock()
		return nil, ErrNotFound
	}
	ok, remaining := g.cooldowns.tryConsume(deployerID, "sabotage", now, SabotageCooldown)
	if !ok {
		g.mu.Unlock()
		return nil, &CooldownError{Action: "sabotage", Remaining: remaining}
	}

	s := &Sabotage{
		ID:         uuid.NewString(),
		DeployerID: deployerID,
		Kind:       kind,
		Location:   LatLng{Lat: lat, Lng: lng},
		Radius:     spec.Radius,
		DeployedAt: now,
		ExpiresAt:  now.Add(spec.Duration),
		Payload:    spec.Payload,
	}
	g.sabotages[s.ID] = s
	p.SabotagesDeployed++
	sink := g.sink
	g.mu.Unlock()

	emit(sink, Event{
		Kind: EventSabotageDeployed, GameID: g.ID, ActorID: deployerID, At: now,
		Payload: map[string]any{"sabotageId": s.ID, "sabotageKind": string(kind)},
	})
	return snapshotSabotage(s), nil
}

// ActiveSabotages lists the deployer's own live deployments, newest
// first. Other players' sabotages stay hidden so traps keep their
// surprise.
func (g *GameCtx) ActiveSabotages(deployerID string, now time.Time) []*Sabotage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Sabotage, 0)
	for _, s := range g.sabotages {
		if s.DeployerID == deployerID && s.ExpiresAt.After(now) {
			out = append(out, snapshotSabotage(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeployedAt.After(out[j].DeployedAt)
	})
	return out
}

func snapshotSabotage(s *Sabotage) *Sabotage {
	cp := *s
	return &cp
}
