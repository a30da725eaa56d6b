package game

import "time"

type EventKind string

const (
	EventTag              EventKind = "tag"
	EventBountyPlaced     EventKind = "bounty_placed"
	EventSabotageDeployed EventKind = "sabotage_deployed"
	EventStealthActivated EventKind = "stealth_activated"
	EventGameEnded        EventKind = "game_ended"
)

// Event describes one committed action. Events are emitted after the
// game lock is released; rejected attempts never produce one.
type Event struct {
	Kind     EventKind      `json:"kind"`
	GameID   string         `json:"gameId"`
	ActorID  string         `json:"actorId,omitempty"`
	TargetID string         `json:"targetId,omitempty"`
	At       time.Time      `json:"at"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// Sink consumes committed events. Implementations must be safe for
// concurrent use; the engine never blocks on sink errors.
type Sink interface {
	Record(ev Event)
}

func emit(s Sink, ev Event) {
	if s != nil {
		s.Record(ev)
	}
}
