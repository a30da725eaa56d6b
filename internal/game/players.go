package game

import (
	"sort"
	"time"
)

// Join adds a participant to the game. The first joiner becomes the
// hunter so the game always holds exactly one; everyone after starts
// hunted. The second join flips a pending game to active.
func (g *GameCtx) Join(playerID string, now time.Time) (*TagPlayer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active() {
		return nil, ErrGameNotActive
	}
	if p, ok := g.players[playerID]; ok {
		return snapshotPlayer(p), nil
	}

	role := RoleHunted
	if g.CurrentHunterID == "" {
		role = RoleHunter
		g.CurrentHunterID = playerID
	}
	p := &TagPlayer{ID: playerID, Role: role, JoinedAt: now}
	g.players[playerID] = p

	if g.Status == StatusPending && len(g.players) >= 2 {
		g.Status = StatusActive
	}
	return snapshotPlayer(p), nil
}

// Player returns a copy of the player's current state.
func (g *GameCtx) Player(playerID string) (*TagPlayer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.players[playerID]
	if p == nil {
		return nil, ErrNotFound
	}
	return snapshotPlayer(p), nil
}

func (g *GameCtx) Players() []*TagPlayer {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*TagPlayer, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, snapshotPlayer(p))
	}
	return out
}

// Leaderboard returns players by score descending, ties by join time.
func (g *GameCtx) Leaderboard() []*TagPlayer {
	out := g.Players()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}

// UpdateLocation overwrites the player's last known position.
// Coordinate validation is the transport layer's job.
func (g *GameCtx) UpdateLocation(playerID string, lat, lng float64, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active() {
		return ErrGameNotActive
	}
	p := g.players[playerID]
	if p == nil {
		return ErrNotFound
	}
	p.Location = &LatLng{Lat: lat, Lng: lng}
	p.LocatedAt = now
	return nil
}

// ToggleStealth flips concealment. Turning stealth off is always free;
// turning it on consumes the stealth cooldown and conceals the player
// for StealthDuration.
func (g *GameCtx) ToggleStealth(playerID string, now time.Time) (*StealthResult, error) {
	g.mu.Lock()
	p := g.players[playerID]
	if p == nil {
		g.mu.Unlock()
		return nil, ErrNotFound
	}
	if !g.active() {
		g.mu.Unlock()
		return nil, ErrGameNotActive
	}

	if p.StealthUntil.After(now) {
		p.StealthUntil = time.Time{}
		g.mu.Unlock()
		return &StealthResult{Active: false}, nil
	}

	ok, remaining := g.cooldowns.tryConsume(playerID, "stealth", now, StealthCooldown)
	if !ok {
		g.mu.Unlock()
		return nil, &CooldownError{Action: "stealth", Remaining: remaining}
	}
	until := now.Add(StealthDuration)
	p.StealthUntil = until
	sink := g.sink
	g.mu.Unlock()

	emit(sink, Event{
		Kind: EventStealthActivated, GameID: g.ID, ActorID: playerID, At: now,
		Payload: map[string]any{"until": until},
	})
	return &StealthResult{Active: true, Until: until}, nil
}

// applyTagSettlement commits both halves of a tag in one step: the
// tagger takes the points and becomes hunted, the target takes over the
// hunt and gets a grace window. Caller holds mu and has already
// validated both players.
func (g *GameCtx) applyTagSettlement(tagger, target *TagPlayer, pointsStolen, bountyReward int, now time.Time) {
	tagger.Role = RoleHunted
	tagger.Score += TagBasePoints + pointsStolen + bountyReward
	tagger.TagsCompleted++
	if bountyReward > 0 {
		tagger.BountiesClaimed++
	}

	target.Role = RoleHunter
	target.Score -= pointsStolen
	target.TimesTagged++
	target.ImmuneUntil = now.Add(ImmunityDuration)

	g.CurrentHunterID = target.ID
}

// debitScore removes points from a player, refusing to go negative.
// Caller holds mu.
func debitScore(p *TagPlayer, amount int) error {
	if p.Score < amount {
		return ErrInsufficientScore
	}
	p.Score -= amount
	return nil
}

func snapshotPlayer(p *TagPlayer) *TagPlayer {
	cp := *p
	if p.Location != nil {
		loc := *p.Location
		cp.Location = &loc
	}
	return &cp
}
