package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Arena owns every running tag game. Games are isolated units: each
// GameCtx carries its own mutex and all mutating operations on a game
// run lock-to-commit under it, so cross-game traffic never contends.
type Arena struct {
	mu    sync.RWMutex
	games map[string]*GameCtx
	sink  Sink
}

// GameCtx is the full state of one pursuit game. Exported methods lock
// mu for their entire check-then-act span; unexported helpers assume
// the caller already holds it.
type GameCtx struct {
	ID        string
	HuntID    string
	CreatedAt time.Time
	Status    GameStatus

	// CurrentHunterID mirrors the single player holding RoleHunter.
	CurrentHunterID string

	players   map[string]*TagPlayer
	bounties  map[string]*Bounty
	sabotages map[string]*Sabotage
	zones     []*SafeZone
	alliances map[string]*Alliance
	cooldowns *cooldownLedger

	sink Sink

	mu sync.Mutex
}

func NewArena() *Arena {
	return &Arena{games: make(map[string]*GameCtx)}
}

// SetSink installs the audit sink for all games, current and future.
func (a *Arena) SetSink(s Sink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sink = s
	for _, g := range a.games {
		g.mu.Lock()
		g.sink = s
		g.mu.Unlock()
	}
}

func (a *Arena) CreateGame(huntID string, now time.Time) *GameCtx {
	a.mu.Lock()
	defer a.mu.Unlock()

	g := &GameCtx{
		ID:        uuid.NewString(),
		HuntID:    huntID,
		CreatedAt: now,
		Status:    StatusPending,
		players:   make(map[string]*TagPlayer),
		bounties:  make(map[string]*Bounty),
		sabotages: make(map[string]*Sabotage),
		alliances: make(map[string]*Alliance),
		cooldowns: newCooldownLedger(),
		sink:      a.sink,
	}
	a.games[g.ID] = g
	return g
}

func (a *Arena) Get(gameID string) (*GameCtx, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	g := a.games[gameID]
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (a *Arena) Games() []*GameCtx {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*GameCtx, 0, len(a.games))
	for _, g := range a.games {
		out = append(out, g)
	}
	return out
}

// EndGame freezes the game. Every mutating operation afterwards fails
// with ErrGameNotActive. Emits a game_ended event carrying final scores.
func (a *Arena) EndGame(gameID string, now time.Time) error {
	g, err := a.Get(gameID)
	if err != nil {
		return err
	}

	g.mu.Lock()
	if g.Status == StatusEnded {
		g.mu.Unlock()
		return nil
	}
	g.Status = StatusEnded
	scores := make(map[string]any, len(g.players))
	for id, p := range g.players {
		scores[id] = p.Score
	}
	sink := g.sink
	g.mu.Unlock()

	emit(sink, Event{Kind: EventGameEnded, GameID: gameID, At: now, Payload: scores})
	return nil
}

// active reports whether mutating operations are allowed. Caller holds mu.
func (g *GameCtx) active() bool {
	return g.Status == StatusActive || g.Status == StatusPending
}
