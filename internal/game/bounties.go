package game

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PlaceBounty escrows a wager on the target's head. The reward leaves
// the placer's score immediately and pays out to whoever tags the
// target before the bounty expires.
func (g *GameCtx) PlaceBounty(placerID, targetID string, reward int, reason string, now time.Time) (*Bounty, error) {
	g.mu.Lock()
	if !g.active() {
		g.mu.Unlock()
		return nil, ErrGameNotActive
	}
	if reward < BountyMinReward || reward > BountyMaxReward {
		g.mu.Unlock()
		return nil, ErrInvalidReward
	}
	if placerID == targetID {
		g.mu.Unlock()
		return nil, ErrSelfTarget
	}
	placer := g.players[placerID]
	target := g.players[targetID]
	if placer == nil || target == nil {
		g.mu.Unlock()
		return nil, ErrNotFound
	}
	if allied(placer, target) {
		g.mu.Unlock()
		return nil, ErrAlliancePeer
	}
	if err := debitScore(placer, reward); err != nil {
		g.mu.Unlock()
		return nil, err
	}

	b := &Bounty{
		ID:        uuid.NewString(),
		TargetID:  targetID,
		PlacerID:  placerID,
		Reward:    reward,
		Reason:    reason,
		PlacedAt:  now,
		ExpiresAt: now.Add(BountyLifetime),
	}
	g.bounties[b.ID] = b
	sink := g.sink
	g.mu.Unlock()

	emit(sink, Event{
		Kind: EventBountyPlaced, GameID: g.ID, ActorID: placerID, TargetID: targetID, At: now,
		Payload: map[string]any{"bountyId": b.ID, "reward": reward},
	})
	return snapshotBounty(b), nil
}

// ActiveBounties lists unclaimed, unexpired bounties by reward
// descending. Recomputed on every call.
func (g *GameCtx) ActiveBounties(now time.Time) []*Bounty {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Bounty, 0, len(g.bounties))
	for _, b := range g.bounties {
		if !b.Claimed && b.ExpiresAt.After(now) {
			out = append(out, snapshotBounty(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reward != out[j].Reward {
			return out[i].Reward > out[j].Reward
		}
		return out[i].PlacedAt.Before(out[j].PlacedAt)
	})
	return out
}

// claimBounties marks every active bounty on the target as claimed by
// the claimer and returns the summed reward. Claimed or expired
// bounties are skipped, never double-paid. Caller holds mu; crediting
// the total is the caller's side of the settlement.
func (g *GameCtx) claimBounties(targetID, claimerID string, now time.Time) int {
	total := 0
	for _, b := range g.bounties {
		if b.Claimed || b.TargetID != targetID || !b.ExpiresAt.After(now) {
			continue
		}
		b.Claimed = true
		b.ClaimedBy = claimerID
		b.ClaimedAt = now
		total += b.Reward
	}
	return total
}

func snapshotBounty(b *Bounty) *Bounty {
	cp := *b
	return &cp
}
