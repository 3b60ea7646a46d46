package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/sultanahmad/atm-sim/internal/http/respond"
	"github.com/sultanahmad/atm-sim/internal/session"
)

// KioskHandler exposes the single ATM session over HTTP for a browser front
// end. Every event goes through the session loop, so concurrent requests are
// still handled one at a time, in arrival order.
type KioskHandler struct {
	loop    *session.Loop
	notices *NoticeBuffer
	feed    *Feed

	// mu pairs each submitted event with the notices it produced. Without it,
	// two concurrent POST /event callers could drain each other's notices.
	mu sync.Mutex
}

// NewKioskHandler constructs the handler. feed may be nil when no websocket
// clients are served.
func NewKioskHandler(loop *session.Loop, notices *NoticeBuffer, feed *Feed) *KioskHandler {
	return &KioskHandler{loop: loop, notices: notices, feed: feed}
}

// Register attaches kiosk routes to the mux.
func (h *KioskHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/display", h.handleDisplay)
	mux.HandleFunc("/event", h.handleEvent)
}

// eventRequest is the wire form of one keypad or side-button event.
type eventRequest struct {
	Kind   string `json:"kind"` // digit | decimal | clear | confirm | cancel | action
	Digit  string `json:"digit,omitempty"`
	Action string `json:"action,omitempty"`
}

// displayResponse carries the screen state plus any modal notices the event
// produced.
type displayResponse struct {
	Display session.Display `json:"display"`
	Notices []Notice        `json:"notices,omitempty"`
}

func (h *KioskHandler) handleDisplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	display, err := h.loop.Snapshot(r.Context())
	if err != nil {
		respond.Error(w, http.StatusServiceUnavailable, "session loop unavailable")
		return
	}
	respond.JSON(w, http.StatusOK, displayResponse{Display: display})
}

func (h *KioskHandler) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	ev, err := parseEvent(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	display, err := h.loop.Submit(r.Context(), ev)
	if err != nil {
		h.mu.Unlock()
		respond.Error(w, http.StatusServiceUnavailable, "session loop unavailable")
		return
	}
	resp := displayResponse{Display: display, Notices: h.notices.Drain()}
	if h.feed != nil {
		h.feed.Broadcast(resp)
	}
	h.mu.Unlock()
	respond.JSON(w, http.StatusOK, resp)
}

func parseEvent(req eventRequest) (session.Event, error) {
	switch req.Kind {
	case "digit":
		if len(req.Digit) != 1 || req.Digit[0] < '0' || req.Digit[0] > '9' {
			return session.Event{}, fmt.Errorf("digit must be a single character 0-9, got %q", req.Digit)
		}
		return session.Digit(rune(req.Digit[0])), nil
	case "decimal":
		return session.DecimalPoint(), nil
	case "clear":
		return session.Clear(), nil
	case "confirm":
		return session.Confirm(), nil
	case "cancel":
		return session.Cancel(), nil
	case "action":
		switch a := session.Action(req.Action); a {
		case session.ActionBalance, session.ActionWithdraw, session.ActionDeposit, session.ActionHistory:
			return session.SideAction(a), nil
		default:
			return session.Event{}, fmt.Errorf("unknown action %q", req.Action)
		}
	default:
		return session.Event{}, fmt.Errorf("unknown event kind %q", req.Kind)
	}
}
