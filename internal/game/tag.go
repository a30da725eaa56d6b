package game

import "time"

// AttemptTag runs the full tag protocol for one attempt. Preconditions
// are checked in a fixed order and the first failure wins; a rejected
// attempt leaves no trace. On success the role swap, point theft,
// bounty payout, and hunter pointer update commit as one unit under the
// game lock: the tagger becomes hunted, the target becomes the new
// hunter with a short immunity window.
func (g *GameCtx) AttemptTag(taggerID, targetID string, taggerLat, taggerLng float64, now time.Time) (*TagResult, error) {
	g.mu.Lock()

	if !g.active() {
		g.mu.Unlock()
		return nil, ErrGameNotActive
	}
	tagger := g.players[taggerID]
	target := g.players[targetID]
	if tagger == nil || target == nil {
		g.mu.Unlock()
		return nil, ErrNotFound
	}
	if tagger.Role != RoleHunter {
		g.mu.Unlock()
		return nil, ErrNotHunter
	}
	if target.ImmuneUntil.After(now) {
		g.mu.Unlock()
		return nil, ErrTargetImmune
	}
	if target.StealthUntil.After(now) {
		g.mu.Unlock()
		return nil, ErrTargetStealthed
	}
	if target.Location != nil && g.inActiveSafeZone(*target.Location, now) {
		g.mu.Unlock()
		return nil, ErrTargetInSafeZone
	}
	if allied(tagger, target) {
		g.mu.Unlock()
		return nil, ErrAlliancePeer
	}
	if target.Location == nil {
		g.mu.Unlock()
		return nil, ErrTooFar
	}
	at := LatLng{Lat: taggerLat, Lng: taggerLng}
	if DistanceMeters(at, *target.Location) > TagRadiusMeters {
		g.mu.Unlock()
		return nil, ErrTooFar
	}

	// Clamped so the theft can never push the target negative.
	pointsStolen := target.Score / StealDivisor
	if pointsStolen > target.Score {
		pointsStolen = target.Score
	}
	bountyReward := g.claimBounties(targetID, taggerID, now)
	g.applyTagSettlement(tagger, target, pointsStolen, bountyReward, now)
	sink := g.sink
	g.mu.Unlock()

	res := &TagResult{
		PointsEarned: TagBasePoints + pointsStolen + bountyReward,
		PointsStolen: pointsStolen,
		BountyReward: bountyReward,
		NewHunterID:  targetID,
	}
	emit(sink, Event{
		Kind: EventTag, GameID: g.ID, ActorID: taggerID, TargetID: targetID, At: now,
		Payload: map[string]any{
			"pointsEarned": res.PointsEarned,
			"pointsStolen": pointsStolen,
			"bountyReward": bountyReward,
			"newHunterId":  targetID,
		},
	})
	return res, nil
}
