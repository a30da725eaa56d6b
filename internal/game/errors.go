package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameNotActive = errors.New("game not active")
	ErrNotFound      = errors.New("player not found")

	ErrNotHunter        = errors.New("only the current hunter can tag")
	ErrTargetImmune     = errors.New("target is immune")
	ErrTargetStealthed  = errors.New("target is stealthed")
	ErrTargetInSafeZone = errors.New("target is inside a safe zone")
	ErrAlliancePeer     = errors.New("players share an alliance")
	ErrTooFar           = errors.New("target out of tag range")

	ErrSelfTarget        = errors.New("cannot target yourself")
	ErrInvalidReward     = errors.New("bounty reward out of range")
	ErrInsufficientScore = errors.New("insufficient score")

	ErrInvalidSabotageType = errors.New("unknown sabotage type")
	ErrAlreadyAllied       = errors.New("player already in an alliance")

	// ErrCooldown is the errors.Is target for *CooldownError.
	ErrCooldown = errors.New("action on cooldown")
)

// CooldownError reports a throttled action along with how long the
// caller has to wait before retrying.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s on cooldown for %s", e.Action, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldown }
