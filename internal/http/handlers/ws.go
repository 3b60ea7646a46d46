package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Feed pushes a display snapshot to every connected websocket client after
// each processed event, so a browser front end can mirror the kiosk screen
// without polling.
type Feed struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	last  *displayResponse
}

// NewFeed creates the feed. Origin checking mirrors the CORS allow-list.
func NewFeed(allowedOrigins []string) *Feed {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register wires the feed into a ServeMux.
func (f *Feed) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ws", f.handle)
}

func (f *Feed) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	// Send the current snapshot before joining the broadcast set, so this
	// write cannot race a concurrent Broadcast on the same connection.
	f.mu.Lock()
	last := f.last
	f.mu.Unlock()
	if last != nil {
		if err := conn.WriteJSON(last); err != nil {
			_ = conn.Close()
			return
		}
	}

	f.mu.Lock()
	f.conns[conn] = struct{}{}
	total := len(f.conns)
	f.mu.Unlock()
	log.Printf("ws connected: %s (total=%d)", conn.RemoteAddr(), total)

	// Clients never send anything meaningful; the read pump just detects the
	// close.
	go func() {
		defer f.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the payload to all clients, dropping the ones that fail.
// The retained snapshot keeps only the screen state: notices are one-shot
// modals consumed by the event that produced them, and must not replay to
// clients that connect later.
func (f *Feed) Broadcast(payload displayResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = &displayResponse{Display: payload.Display}
	for conn := range f.conns {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("ws send to %s failed: %v", conn.RemoteAddr(), err)
			delete(f.conns, conn)
			_ = conn.Close()
		}
	}
}

func (f *Feed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.conns[conn]; ok {
		delete(f.conns, conn)
		log.Printf("ws disconnected: %s", conn.RemoteAddr())
	}
	_ = conn.Close()
}
