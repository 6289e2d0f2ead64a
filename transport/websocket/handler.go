package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pengstrike/gameserver/game/engine"
	"github.com/pengstrike/gameserver/game/service"
)

// Options controls how a Handler assigns connections to games.
//
// Game pins every connection to one game immediately on connect, the
// standalone-server behavior. When Game is empty, connections start
// unassigned and pick a game with a gameType message; until then their
// traffic lands in DefaultGame.
type Options struct {
	Game        string
	DefaultGame string
}

// Handler upgrades HTTP requests to WebSocket connections and speaks the
// relay protocol over them.
type Handler struct {
	hub  *Hub
	svc  service.RelayService
	opts Options
}

// NewHandler creates a WebSocket handler over the given hub and service.
func NewHandler(hub *Hub, svc service.RelayService, opts Options) *Handler {
	if opts.DefaultGame == "" {
		opts.DefaultGame = opts.Game
	}
	return &Handler{hub: hub, svc: svc, opts: opts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(engine.NewID(), conn)
	h.hub.Register(client)

	go client.writePump()
	go h.readPump(client)
}

// session is the per-connection read state. game stays empty until the
// connection joins a scope.
type session struct {
	client *Client
	game   string
}

// gameOrDefault is the scope used for traffic from connections that never
// sent a gameType message.
func (s *session) gameOrDefault(def string) string {
	if s.game != "" {
		return s.game
	}
	return def
}

func (h *Handler) readPump(client *Client) {
	sess := &session{client: client}
	defer h.closeSession(sess)

	conn := client.conn
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Single-game servers join on connect; no gameType handshake.
	if h.opts.Game != "" {
		if err := h.join(sess, h.opts.Game); err != nil {
			log.Printf("Client %s failed to join %s: %v", client.id, h.opts.Game, err)
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
		h.handleMessage(sess, data)
	}
}

func (h *Handler) handleMessage(sess *session, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Client %s sent malformed message: %v", sess.client.id, err)
		return
	}

	switch msg.Type {
	case typeGameType:
		// Only meaningful on the multi-game server.
		if h.opts.Game != "" {
			log.Printf("Client %s sent unknown message type %q", sess.client.id, msg.Type)
			return
		}
		game := msg.GameType
		err := h.join(sess, game)
		if errors.Is(err, service.ErrUnknownGame) {
			// Unrecognized names fall through to the default game.
			err = h.join(sess, h.opts.DefaultGame)
		}
		if err != nil {
			log.Printf("Client %s failed to join %s: %v", sess.client.id, game, err)
		}

	case typeUpdatePosition:
		t := engine.Transform{
			Position: msg.Position,
			Rotation: msg.Rotation,
			Velocity: msg.Velocity,
			OnFloor:  msg.OnFloor,
		}
		game := sess.gameOrDefault(h.opts.DefaultGame)
		h.svc.UpdatePosition(context.Background(), game, sess.client.id, t)
		// Relayed even when the player is not registered in the scope;
		// receivers ignore IDs they do not know.
		h.hub.BroadcastExcept(sess.client, playerUpdateMessage{
			Type:     typePlayerUpdate,
			PlayerID: sess.client.id,
			Position: msg.Position,
			Rotation: msg.Rotation,
			Velocity: msg.Velocity,
			OnFloor:  msg.OnFloor,
		})

	case typeThrowBall:
		game := sess.gameOrDefault(h.opts.DefaultGame)
		ball, err := h.svc.ThrowBall(context.Background(), game, msg.Position, msg.Velocity)
		if err != nil {
			log.Printf("Client %s throwBall rejected: %v", sess.client.id, err)
			return
		}
		h.hub.BroadcastAll(ballThrownMessage{Type: typeBallThrown, Ball: ball})

	default:
		log.Printf("Client %s sent unknown message type %q", sess.client.id, msg.Type)
	}
}

// join registers the connection in a game scope, sends it the init payload
// and announces it to everyone else.
func (h *Handler) join(sess *session, game string) error {
	res, err := h.svc.Join(context.Background(), game, sess.client.id)
	if err != nil {
		return err
	}
	sess.game = game

	init := initMessage{
		Type:        typeInit,
		PlayerID:    res.Player.ID,
		PlayerColor: res.Player.Color,
		Players:     res.Others,
	}
	if h.opts.Game != "" {
		// Single-game init always carries objects, empty when the game
		// has no balls.
		objects := res.Balls
		if objects == nil {
			objects = []engine.Ball{}
		}
		init.Objects = &objects
	} else if res.HasBalls {
		balls := res.Balls
		init.Balls = &balls
	}
	h.hub.Send(sess.client, init)

	h.hub.BroadcastExcept(sess.client, playerJoinedMessage{
		Type:   typePlayerJoined,
		Player: res.Player,
	})
	return nil
}

// closeSession tears the connection down. playerLeft goes out even when the
// connection never joined a game; clients ignore unknown IDs.
func (h *Handler) closeSession(sess *session) {
	h.hub.Unregister(sess.client)
	sess.client.conn.Close()

	h.svc.Leave(context.Background(), sess.gameOrDefault(h.opts.DefaultGame), sess.client.id)
	h.hub.BroadcastAll(playerLeftMessage{Type: typePlayerLeft, PlayerID: sess.client.id})
}
