// internal/httpserver/ws.go
//
// Realtime board channel. One room per round; every event the round engine
// publishes (cell updates, expiry, completion) fans out to the sockets in
// that room. Clients drive the board back through small JSON commands.

package httpserver

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/round"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Non-browser clients send no Origin; allow them.
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	},
}

// Hub fans round events out to the sockets watching each round. It is the
// round.Notifier wired into the manager.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) register(roundID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[roundID]
	if room == nil {
		room = make(map[*websocket.Conn]bool)
		h.rooms[roundID] = room
	}
	room[c] = true
}

func (h *Hub) unregister(roundID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room := h.rooms[roundID]; room != nil {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, roundID)
		}
	}
}

// Publish implements round.Notifier. The hub lock doubles as the write lock
// per conn; gorilla connections do not allow concurrent writers.
func (h *Hub) Publish(roundID string, e round.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[roundID]
	for c := range room {
		if err := c.WriteJSON(e); err != nil {
			delete(room, c)
			_ = c.Close()
		}
	}
}

// send writes one event to one conn under the hub lock.
func (h *Hub) send(c *websocket.Conn, e round.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = c.WriteJSON(e)
}

// wsCommand is a client-to-server message on the round socket.
type wsCommand struct {
	Action string `json:"action"` // edit | focus | blur
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Word   string `json:"word,omitempty"`
}

func errorEvent(msg string) round.Event {
	return round.Event{Type: "error", Data: map[string]string{"error": msg}}
}

// handleWS upgrades the connection, replays the current board, then applies
// edit/focus/blur commands until the client hangs up. Verdicts and expiry
// events reach the socket through the hub, not as command replies.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.getRound(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("round", rd.ID).Msg("websocket upgrade failed")
		return
	}
	s.hub.register(rd.ID, conn)
	defer func() {
		s.hub.unregister(rd.ID, conn)
		_ = conn.Close()
	}()

	// Late joiners render from this snapshot.
	s.hub.send(conn, round.Event{Type: "board_state", Data: rd.Status()})

	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Action {
		case "edit":
			if _, err := rd.EditCell(cmd.Row, cmd.Col, cmd.Word); err != nil {
				s.hub.send(conn, errorEvent(err.Error()))
			}
		case "focus":
			if _, err := rd.Focus(cmd.Row, cmd.Col); err != nil {
				s.hub.send(conn, errorEvent(err.Error()))
			}
		case "blur":
			if _, err := rd.Blur(cmd.Row, cmd.Col); err != nil {
				s.hub.send(conn, errorEvent(err.Error()))
			}
		default:
			s.hub.send(conn, errorEvent("unknown action"))
		}
	}
}
