package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"esports-registration/internal/registration"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// wsHTMLMessage asks the page script to swap the element at Target.
type wsHTMLMessage struct {
	Target string `json:"target"`
	Swap   string `json:"swap"`
	HTML   string `json:"html"`
}

func htmlMessage(target, swap, html string) wsHTMLMessage {
	return wsHTMLMessage{Target: target, Swap: swap, HTML: html}
}

// wsClient is one open page socket. mu serializes writes since a connection
// allows one concurrent writer.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// wsHub groups open page sockets by session id. Writes to one client never
// wait on another, and a write that exceeds writeWait drops the client.
type wsHub struct {
	mu        sync.Mutex
	writeWait time.Duration
	groups    map[string]map[*websocket.Conn]*wsClient
}

func newWSHub(writeWait time.Duration) *wsHub {
	return &wsHub{
		writeWait: writeWait,
		groups:    make(map[string]map[*websocket.Conn]*wsClient),
	}
}

func (h *wsHub) Add(sessionID string, conn *websocket.Conn) *wsClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		group = make(map[*websocket.Conn]*wsClient)
		h.groups[sessionID] = group
	}
	client := &wsClient{conn: conn}
	group[conn] = client
	return client
}

func (h *wsHub) Remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[sessionID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, sessionID)
	}
}

func (h *wsHub) RemoveSession(sessionID string) {
	h.mu.Lock()
	group := h.groups[sessionID]
	delete(h.groups, sessionID)
	h.mu.Unlock()
	for conn := range group {
		_ = conn.Close()
	}
}

func (h *wsHub) CloseAll() {
	h.mu.Lock()
	groups := h.groups
	h.groups = make(map[string]map[*websocket.Conn]*wsClient)
	h.mu.Unlock()
	for _, group := range groups {
		for conn := range group {
			_ = conn.Close()
		}
	}
}

func (h *wsHub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[sessionID])
}

// Send writes payload to a single client, dropping it if the write fails.
func (h *wsHub) Send(sessionID string, client *wsClient, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.write(client, data); err != nil {
		log.Debug().Str("session_id", sessionID).Err(err).Msg("ws write failed")
		h.Remove(sessionID, client.conn)
	}
}

func (h *wsHub) write(client *wsClient, data []byte) error {
	client.mu.Lock()
	defer client.mu.Unlock()
	if err := client.conn.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
		return err
	}
	return client.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(sessionID string, payload any) {
	h.mu.Lock()
	group := h.groups[sessionID]
	clients := make([]*wsClient, 0, len(group))
	for _, client := range group {
		clients = append(clients, client)
	}
	h.mu.Unlock()
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, client := range clients {
		if err := h.write(client, data); err != nil {
			log.Debug().Str("session_id", sessionID).Err(err).Msg("ws write failed")
			h.Remove(sessionID, client.conn)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser
// clients) and browser requests from this host only.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return parsed.Host == r.Host
}

func (s *Server) handleWebsocket(c *gin.Context) {
	sess, ok := s.sessions.Lookup(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Debug().Str("session_id", sess.id).Str("remote", c.Request.RemoteAddr).Msg("ws connected")
	client := s.ws.Add(sess.id, conn)
	s.ws.Send(sess.id, client, s.sectionMessage(sess.controller.Snapshot()))
	go s.readWS(sess.id, conn)
}

func (s *Server) readWS(sessionID string, conn *websocket.Conn) {
	defer s.ws.Remove(sessionID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug().Str("session_id", sessionID).Err(err).Msg("ws disconnected")
			return
		}
	}
}

func (s *Server) pushSection(sessionID string, state registration.FormState) {
	if s.ws == nil {
		return
	}
	s.ws.Broadcast(sessionID, s.sectionMessage(state))
}

func (s *Server) sectionMessage(state registration.FormState) wsHTMLMessage {
	return htmlMessage("#registration", "outer", s.renderSectionHTML(buildFormView(state, "")))
}
