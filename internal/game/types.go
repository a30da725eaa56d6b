package game

import (
	"time"
)

type Role string

const (
	RoleHunter Role = "hunter"
	RoleHunted Role = "hunted"
)

type GameStatus string

const (
	StatusPending GameStatus = "pending"
	StatusActive  GameStatus = "active"
	StatusEnded   GameStatus = "ended"
)

// Gameplay tuning. Distances in meters.
const (
	TagRadiusMeters  = 50.0
	TagBasePoints    = 100
	StealDivisor     = 10 // 10% of the target's score changes hands
	ImmunityDuration = 30 * time.Second

	StealthDuration = 2 * time.Minute
	StealthCooldown = 10 * time.Minute

	SabotageCooldown = 5 * time.Minute

	BountyMinReward = 50
	BountyMaxReward = 500
	BountyLifetime  = 30 * time.Minute
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TagPlayer struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Score      int    `json:"score"`
	AllianceID string `json:"allianceId,omitempty"`

	Location     *LatLng   `json:"location,omitempty"`
	LocatedAt    time.Time `json:"locatedAt,omitzero"`
	JoinedAt     time.Time `json:"joinedAt"`
	ImmuneUntil  time.Time `json:"immuneUntil,omitzero"`
	StealthUntil time.Time `json:"stealthUntil,omitzero"`

	TagsCompleted     int `json:"tagsCompleted"`
	TimesTagged       int `json:"timesTagged"`
	SabotagesDeployed int `json:"sabotagesDeployed"`
	BountiesClaimed   int `json:"bountiesClaimed"`
}

type Bounty struct {
	ID        string    `json:"id"`
	TargetID  string    `json:"targetId"`
	PlacerID  string    `json:"placerId"`
	Reward    int       `json:"reward"`
	Reason    string    `json:"reason,omitempty"`
	PlacedAt  time.Time `json:"placedAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	Claimed   bool      `json:"claimed"`
	ClaimedBy string    `json:"claimedBy,omitempty"`
	ClaimedAt time.Time `json:"claimedAt,omitzero"`
}

type SabotageKind string

const (
	SabotageDecoyChallenge     SabotageKind = "decoy_challenge"
	SabotageLocationScramble   SabotageKind = "location_scramble"
	SabotagePointDrain         SabotageKind = "point_drain"
	SabotageChallengeIntercept SabotageKind = "challenge_intercept"
	SabotageSpeedTrap          SabotageKind = "speed_trap"
)

// sabotageSpec is the fixed per-kind configuration: effect lifetime,
// reach, and any effect payload.
type sabotageSpec struct {
	Duration time.Duration
	Radius   float64
	Payload  map[string]float64
}

var sabotageSpecs = map[SabotageKind]sabotageSpec{
	SabotageDecoyChallenge:     {Duration: 10 * time.Minute, Radius: 30},
	SabotageLocationScramble:   {Duration: 2 * time.Minute, Radius: 50},
	SabotagePointDrain:         {Duration: 5 * time.Minute, Radius: 30, Payload: map[string]float64{"points": 50}},
	SabotageChallengeIntercept: {Duration: 3 * time.Minute, Radius: 40},
	SabotageSpeedTrap:          {Duration: 2 * time.Minute, Radius: 30, Payload: map[string]float64{"slowdown": 0.5}},
}

type Sabotage struct {
	ID         string             `json:"id"`
	DeployerID string             `json:"deployerId"`
	Kind       SabotageKind       `json:"kind"`
	Location   LatLng             `json:"location"`
	Radius     float64            `json:"radius"`
	DeployedAt time.Time          `json:"deployedAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	Payload    map[string]float64 `json:"payload,omitempty"`
}

// SafeZone blocks tags against anyone inside it. A zone with an hour
// window (ActiveFromHour != ActiveToHour) only applies inside that
// hour-of-day range; the window may wrap midnight.
type SafeZone struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`

	ActiveFromHour int `json:"activeFromHour"`
	ActiveToHour   int `json:"activeToHour"`
}

type Alliance struct {
	ID        string    `json:"id"`
	FormedAt  time.Time `json:"formedAt"`
	MemberIDs []string  `json:"memberIds"`
}

type TagResult struct {
	PointsEarned int    `json:"pointsEarned"`
	PointsStolen int    `json:"pointsStolen"`
	BountyReward int    `json:"bountyReward"`
	NewHunterID  string `json:"newHunterId"`
}

type StealthResult struct {
	Active bool      `json:"active"`
	Until  time.Time `json:"until,omitzero"`
}
