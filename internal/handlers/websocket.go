package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"chess-rules/internal/models"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin filtering happens at the CORS layer
	},
}

// WebSocketHandler pushes live game updates to connected players.
type WebSocketHandler struct {
	hub *Hub
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := NewHub()
	go hub.Run()
	return &WebSocketHandler{hub: hub}
}

// Hub maintains active connections and broadcasts messages
type Hub struct {
	// sessionID -> playerID -> connection
	sessions map[string]map[string]*Client
	mu       sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	playerID  string
	send      chan []byte
}

type BroadcastMessage struct {
	SessionID       string
	Message         []byte
	ExcludePlayerID string
}

type WSMessage struct {
	Type           string       `json:"type"`
	Game           *models.Game `json:"game,omitempty"`
	Move           *models.Move `json:"move,omitempty"`
	ResigningColor string       `json:"resigningColor,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.sessions[client.sessionID] == nil {
				h.sessions[client.sessionID] = make(map[string]*Client)
			}
			h.sessions[client.sessionID][client.playerID] = client
			h.mu.Unlock()
			log.Printf("Client registered: session=%s player=%s", client.sessionID, client.playerID)

		case client := <-h.unregister:
			h.mu.Lock()
			if session, ok := h.sessions[client.sessionID]; ok {
				if _, ok := session[client.playerID]; ok {
					delete(session, client.playerID)
					close(client.send)
					if len(session) == 0 {
						delete(h.sessions, client.sessionID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Client unregistered: session=%s player=%s", client.sessionID, client.playerID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			if session, ok := h.sessions[msg.SessionID]; ok {
				for playerID, client := range session {
					if playerID == msg.ExcludePlayerID {
						continue
					}
					select {
					case client.send <- msg.Message:
					default:
						close(client.send)
						delete(session, playerID)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) BroadcastToSession(sessionID string, message []byte, excludePlayerID string) {
	h.broadcast <- &BroadcastMessage{
		SessionID:       sessionID,
		Message:         message,
		ExcludePlayerID: excludePlayerID,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	playerID := r.URL.Query().Get("playerId")

	if sessionID == "" || playerID == "" {
		http.Error(w, "Missing sessionId or playerId", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		sessionID: sessionID,
		playerID:  playerID,
		send:      make(chan []byte, 256),
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *WebSocketHandler) broadcastMessage(sessionID string, msg WSMessage, excludePlayerID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", msg.Type, err)
		return
	}
	h.hub.BroadcastToSession(sessionID, data, excludePlayerID)
}

// BroadcastMove sends a move to the other players in a session
func (h *WebSocketHandler) BroadcastMove(sessionID string, game *models.Game, move *models.Move, excludePlayerID string) {
	h.broadcastMessage(sessionID, WSMessage{Type: "move", Game: game, Move: move}, excludePlayerID)
}

// BroadcastPlayerJoined notifies that a player has joined
func (h *WebSocketHandler) BroadcastPlayerJoined(sessionID string, game *models.Game) {
	h.broadcastMessage(sessionID, WSMessage{Type: "player_joined", Game: game}, "")
}

// BroadcastResignation notifies that a player has resigned
func (h *WebSocketHandler) BroadcastResignation(sessionID string, game *models.Game, resigningColor string, excludePlayerID string) {
	h.broadcastMessage(sessionID, WSMessage{Type: "resignation", Game: game, ResigningColor: resigningColor}, excludePlayerID)
}
