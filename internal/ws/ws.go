// Package ws pushes committed engine events to spectating clients over
// Socket.IO. Clients watch a game by joining its room; every event the
// engine emits for that game is broadcast there.
package ws

import (
	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/questchase/pursuit/internal/game"
)

type Server struct {
	io   *socketio.Server
	next game.Sink
}

// New builds the broadcaster. next, if non-nil, receives every event
// after it is broadcast (the audit store sits there).
func New(next game.Sink) *Server {
	return &Server{next: next}
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)
	srv.io = io

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:watch
	io.OnEvent("/", "game:watch", func(s socketio.Conn, payload struct {
		GameID string `json:"gameId"`
	}) map[string]any {
		if payload.GameID == "" {
			return map[string]any{"error": "missing_game_id"}
		}
		s.Join(payload.GameID)
		log.Info().Str("sid", s.ID()).Str("gameId", payload.GameID).Msg("game:watch")
		return map[string]any{"ok": true}
	})

	// game:unwatch
	io.OnEvent("/", "game:unwatch", func(s socketio.Conn, payload struct {
		GameID string `json:"gameId"`
	}) map[string]any {
		s.Leave(payload.GameID)
		return map[string]any{"ok": true}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Warn().Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go func() {
		if err := io.Serve(); err != nil {
			log.Error().Err(err).Msg("socketio serve")
		}
	}()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	return io
}

// Record implements game.Sink: broadcast to the game's room, then pass
// the event along the chain.
func (srv *Server) Record(ev game.Event) {
	if srv.io != nil {
		srv.io.BroadcastToRoom("/", ev.GameID, "game:event", ev)
	}
	if srv.next != nil {
		srv.next.Record(ev)
	}
}
