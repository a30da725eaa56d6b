// Package store persists the engine's audit trail to SQLite: one row
// per committed action plus a final score snapshot when a game ends.
package store

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/questchase/pursuit/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	actor_id TEXT,
	target_id TEXT,
	payload TEXT,
	at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_game ON events(game_id);

CREATE TABLE IF NOT EXISTS final_scores (
	game_id TEXT NOT NULL,
	player_id TEXT NOT NULL,
	score INTEGER NOT NULL,
	PRIMARY KEY (game_id, player_id)
);
`

type Audit struct {
	db *sql.DB
}

func Open(path string) (*Audit, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Audit{db: db}, nil
}

func (a *Audit) Close() error { return a.db.Close() }

// Record implements game.Sink. Storage faults are logged, never
// surfaced into gameplay.
func (a *Audit) Record(ev game.Event) {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	_, err = a.db.Exec(
		`INSERT INTO events (game_id, kind, actor_id, target_id, payload, at) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.GameID, string(ev.Kind), ev.ActorID, ev.TargetID, string(payload), ev.At,
	)
	if err != nil {
		log.Error().Err(err).Str("gameId", ev.GameID).Str("kind", string(ev.Kind)).Msg("audit insert failed")
		return
	}
	if ev.Kind == game.EventGameEnded {
		a.saveFinalScores(ev)
	}
}

func (a *Audit) saveFinalScores(ev game.Event) {
	for playerID, score := range ev.Payload {
		_, err := a.db.Exec(
			`INSERT INTO final_scores (game_id, player_id, score) VALUES (?, ?, ?)
			 ON CONFLICT(game_id, player_id) DO UPDATE SET score = excluded.score`,
			ev.GameID, playerID, score,
		)
		if err != nil {
			log.Error().Err(err).Str("gameId", ev.GameID).Msg("final score upsert failed")
		}
	}
}

// Events returns a game's audit trail in commit order.
func (a *Audit) Events(gameID string) ([]game.Event, error) {
	rows, err := a.db.Query(
		`SELECT kind, actor_id, target_id, payload, at FROM events WHERE game_id = ? ORDER BY id`,
		gameID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Event
	for rows.Next() {
		ev := game.Event{GameID: gameID}
		var payload string
		if err := rows.Scan(&ev.Kind, &ev.ActorID, &ev.TargetID, &payload, &ev.At); err != nil {
			return nil, err
		}
		if payload != "" {
			_ = json.Unmarshal([]byte(payload), &ev.Payload)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
