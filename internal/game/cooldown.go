package game

import "time"

type cooldownKey struct {
	playerID string
	action   string
}

// cooldownLedger records the last use of each (player, action) pair.
// It carries no lock of its own: every call happens under the owning
// game's mutex, which makes tryConsume an atomic check-and-set.
type cooldownLedger struct {
	lastUsed map[cooldownKey]time.Time
}

func newCooldownLedger() *cooldownLedger {
	return &cooldownLedger{lastUsed: make(map[cooldownKey]time.Time)}
}

// tryConsume permits the action and records now as its last use, unless
// a prior use falls within window of now. On denial it reports the
// remaining wait and leaves the ledger untouched.
func (l *cooldownLedger) tryConsume(playerID, action string, now time.Time, window time.Duration) (bool, time.Duration) {
	k := cooldownKey{playerID: playerID, action: action}
	if last, ok := l.lastUsed[k]; ok {
		if elapsed := now.Sub(last); elapsed < window {
			return false, window - elapsed
		}
	}
	l.lastUsed[k] = now
	return true, 0
}
