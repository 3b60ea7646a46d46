package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sultanahmad/atm-sim/internal/ledger"
	"github.com/sultanahmad/atm-sim/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	bank, err := ledger.New([]ledger.SeedAccount{
		{Number: "123456789", PIN: "1234", Balance: 150000},
	}, 3)
	if err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	notices := NewNoticeBuffer()
	loop := session.NewLoop(session.New(bank, notices))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go loop.Run(ctx)

	mux := http.NewServeMux()
	NewKioskHandler(loop, notices, nil).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func postEvent(t *testing.T, ts *httptest.Server, body string) (displayResponse, int) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/event", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post event: %v", err)
	}
	defer resp.Body.Close()

	var out displayResponse
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return out, resp.StatusCode
}

func typeDigitsHTTP(t *testing.T, ts *httptest.Server, digits string) displayResponse {
	t.Helper()
	var out displayResponse
	for _, r := range digits {
		var status int
		out, status = postEvent(t, ts, `{"kind":"digit","digit":"`+string(r)+`"}`)
		if status != http.StatusOK {
			t.Fatalf("digit %q: status %d", r, status)
		}
	}
	return out
}

func TestKioskLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	typeDigitsHTTP(t, ts, "123456789")
	postEvent(t, ts, `{"kind":"confirm"}`)
	d := typeDigitsHTTP(t, ts, "1234")
	if d.Display.Input != "****" {
		t.Fatalf("PIN shown unmasked over HTTP: %q", d.Display.Input)
	}
	d, status := postEvent(t, ts, `{"kind":"confirm"}`)
	if status != http.StatusOK {
		t.Fatalf("confirm status = %d", status)
	}
	if d.Display.State != "MainMenu" || !d.Display.ActionsEnabled {
		t.Fatalf("after login display = %+v, want MainMenu with actions enabled", d.Display)
	}

	d, _ = postEvent(t, ts, `{"kind":"action","action":"Balance"}`)
	if !strings.Contains(d.Display.Screen, "$1500.00") {
		t.Fatalf("balance screen = %q", d.Display.Screen)
	}
}

func TestKioskCardBlockedDeliversNotice(t *testing.T) {
	ts := newTestServer(t)

	typeDigitsHTTP(t, ts, "123456789")
	postEvent(t, ts, `{"kind":"confirm"}`)

	var last displayResponse
	for i := 0; i < 3; i++ {
		typeDigitsHTTP(t, ts, "0000")
		last, _ = postEvent(t, ts, `{"kind":"confirm"}`)
	}

	if last.Display.State != "AccountEntry" {
		t.Fatalf("state after block = %q, want AccountEntry", last.Display.State)
	}
	if len(last.Notices) != 1 || !strings.Contains(last.Notices[0].Message, "Card blocked") {
		t.Fatalf("notices = %v, want the card-blocked alert", last.Notices)
	}
}

// Each History action raises exactly one modal notice, and that notice must
// ride the response of the request that caused it, even when requests race.
func TestKioskConcurrentEventsKeepNoticesPaired(t *testing.T) {
	ts := newTestServer(t)

	typeDigitsHTTP(t, ts, "123456789")
	postEvent(t, ts, `{"kind":"confirm"}`)
	typeDigitsHTTP(t, ts, "1234")
	postEvent(t, ts, `{"kind":"confirm"}`)

	const callers = 8
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := bytes.NewBufferString(`{"kind":"action","action":"History"}`)
			resp, err := http.Post(ts.URL+"/event", "application/json", body)
			if err != nil {
				t.Errorf("post event: %v", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
				return
			}
			var out displayResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Errorf("decode response: %v", err)
				return
			}
			if len(out.Notices) != 1 {
				t.Errorf("got %d notices, want exactly 1", len(out.Notices))
			}
		}()
	}
	wg.Wait()
}

func TestKioskDisplaySnapshot(t *testing.T) {
	ts := newTestServer(t)
	typeDigitsHTTP(t, ts, "42")

	resp, err := http.Get(ts.URL + "/display")
	if err != nil {
		t.Fatalf("get display: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out displayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Display.Input != "42" || out.Display.State != "AccountEntry" {
		t.Fatalf("display = %+v", out.Display)
	}
}

func TestKioskRejectsBadEvents(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown kind", body: `{"kind":"reboot"}`},
		{name: "multi-char digit", body: `{"kind":"digit","digit":"12"}`},
		{name: "non-digit", body: `{"kind":"digit","digit":"a"}`},
		{name: "unknown action", body: `{"kind":"action","action":"Transfer"}`},
		{name: "not json", body: `digit 5 please`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, status := postEvent(t, ts, tt.body); status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", status)
			}
		})
	}
}

func TestParseEventKinds(t *testing.T) {
	tests := []struct {
		req  eventRequest
		want session.EventKind
	}{
		{eventRequest{Kind: "digit", Digit: "5"}, session.EventDigit},
		{eventRequest{Kind: "decimal"}, session.EventDecimalPoint},
		{eventRequest{Kind: "clear"}, session.EventClear},
		{eventRequest{Kind: "confirm"}, session.EventConfirm},
		{eventRequest{Kind: "cancel"}, session.EventCancel},
		{eventRequest{Kind: "action", Action: "History"}, session.EventSideAction},
	}
	for _, tt := range tests {
		ev, err := parseEvent(tt.req)
		if err != nil {
			t.Errorf("parseEvent(%+v): %v", tt.req, err)
			continue
		}
		if ev.Kind != tt.want {
			t.Errorf("parseEvent(%+v).Kind = %v, want %v", tt.req, ev.Kind, tt.want)
		}
	}
}
