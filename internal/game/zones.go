package game

import (
	"time"

	"github.com/google/uuid"
)

// AddSafeZone registers a zone. Pass equal from/to hours for an
// always-active zone; otherwise the zone only applies when now's hour
// falls inside [from, to), wrapping midnight if from > to.
func (g *GameCtx) AddSafeZone(name string, center LatLng, radius float64, fromHour, toHour int) *SafeZone {
	g.mu.Lock()
	defer g.mu.Unlock()
	z := &SafeZone{
		ID:             uuid.NewString(),
		Name:           name,
		Center:         center,
		Radius:         radius,
		ActiveFromHour: fromHour,
		ActiveToHour:   toHour,
	}
	g.zones = append(g.zones, z)
	return z
}

func (g *GameCtx) SafeZones() []*SafeZone {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*SafeZone, len(g.zones))
	for i, z := range g.zones {
		cp := *z
		out[i] = &cp
	}
	return out
}

func zoneActiveAt(z *SafeZone, now time.Time) bool {
	if z.ActiveFromHour == z.ActiveToHour {
		return true
	}
	h := now.Hour()
	if z.ActiveFromHour < z.ActiveToHour {
		return h >= z.ActiveFromHour && h < z.ActiveToHour
	}
	// wraps midnight, e.g. 22-06
	return h >= z.ActiveFromHour || h < z.ActiveToHour
}

// inActiveSafeZone reports whether loc sits inside any zone active at
// now. Caller holds mu.
func (g *GameCtx) inActiveSafeZone(loc LatLng, now time.Time) bool {
	for _, z := range g.zones {
		if zoneActiveAt(z, now) && DistanceMeters(loc, z.Center) <= z.Radius {
			return true
		}
	}
	return false
}

// FormAlliance pairs two players into a mutual non-aggression pact.
// Each player holds at most one alliance at a time.
func (g *GameCtx) FormAlliance(playerID, partnerID string, now time.Time) (*Alliance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active() {
		return nil, ErrGameNotActive
	}
	if playerID == partnerID {
		return nil, ErrSelfTarget
	}
	a := g.players[playerID]
	b := g.players[partnerID]
	if a == nil || b == nil {
		return nil, ErrNotFound
	}
	if a.AllianceID != "" || b.AllianceID != "" {
		return nil, ErrAlreadyAllied
	}

	al := &Alliance{
		ID:        uuid.NewString(),
		FormedAt:  now,
		MemberIDs: []string{playerID, partnerID},
	}
	g.alliances[al.ID] = al
	a.AllianceID = al.ID
	b.AllianceID = al.ID
	return al, nil
}

// LeaveAlliance dissolves the player's alliance for every member.
func (g *GameCtx) LeaveAlliance(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.players[playerID]
	if p == nil {
		return ErrNotFound
	}
	if p.AllianceID == "" {
		return nil
	}
	al := g.alliances[p.AllianceID]
	if al != nil {
		for _, id := range al.MemberIDs {
			if m := g.players[id]; m != nil {
				m.AllianceID = ""
			}
		}
		delete(g.alliances, al.ID)
	}
	p.AllianceID = ""
	return nil
}

func allied(a, b *TagPlayer) bool {
	return a.AllianceID != "" && a.AllianceID == b.AllianceID
}
