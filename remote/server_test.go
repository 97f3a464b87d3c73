package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/glowfield/systems"
	"github.com/pthm-cable/glowfield/telemetry"
)

type recordingSink struct {
	mu       sync.Mutex
	pointers []systems.Pointer
}

func (s *recordingSink) SetPointer(p systems.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointers = append(s.pointers, p)
}

func (s *recordingSink) snapshot() []systems.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]systems.Pointer(nil), s.pointers...)
}

type fixedStats telemetry.WindowStats

func (f fixedStats) LatestStats() telemetry.WindowStats {
	return telemetry.WindowStats(f)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out")
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewRouter(&recordingSink{}, fixedStats{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestStats(t *testing.T) {
	stats := fixedStats{WindowEndFrame: 240, Particles: 42, Theme: "light"}
	srv := httptest.NewServer(NewRouter(&recordingSink{}, stats))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["window_end"] != float64(240) || got["particles"] != float64(42) || got["theme"] != "light" {
		t.Errorf("stats = %v", got)
	}
}

func TestWebsocketPointer(t *testing.T) {
	sink := &recordingSink{}
	srv := httptest.NewServer(NewRouter(sink, fixedStats{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	msgs := []PointerMessage{
		{X: 10, Y: 20, Active: true},
		{X: 30, Y: 40, Active: true, Pressed: true},
	}
	for _, m := range msgs {
		if err := conn.WriteJSON(m); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, func() bool { return len(sink.snapshot()) >= 2 })

	got := sink.snapshot()
	if got[0] != (systems.Pointer{X: 10, Y: 20, Active: true}) {
		t.Errorf("first pointer = %+v", got[0])
	}
	if got[1] != (systems.Pointer{X: 30, Y: 40, Active: true, Pressed: true}) {
		t.Errorf("second pointer = %+v", got[1])
	}

	// Disconnecting deactivates the pointer
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitFor(t, func() bool { return len(sink.snapshot()) >= 3 })
	if last := sink.snapshot()[2]; last.Active {
		t.Errorf("pointer still active after disconnect: %+v", last)
	}
}

func TestStartShutdown(t *testing.T) {
	s, err := Start("127.0.0.1:0", time.Second, &recordingSink{}, fixedStats{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := http.Get("http://" + s.Addr() + "/healthz"); err == nil {
		t.Error("server still answering after shutdown")
	}
}
