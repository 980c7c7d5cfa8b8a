package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHandler_SubscribeAndReceive(t *testing.T) {
	h := NewHub(4, testLogger())
	srv := httptest.NewServer(Handler(h, testLogger()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() unexpected error: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Action: ActionSubscribeExperiment, ExperimentID: "BRIC-25"}); err != nil {
		t.Fatalf("WriteJSON() unexpected error: %v", err)
	}

	// The subscription is applied asynchronously by the read loop.
	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := h.Publish(ExperimentRoom("BRIC-25"), Message{Event: EventExperimentUpdate, Data: "ping"})
		if err != nil {
			t.Fatalf("Publish() unexpected error: %v", err)
		}
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never joined the experiment room")
		}
		time.Sleep(10 * time.Millisecond)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() unexpected error: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("invalid payload %s: %v", payload, err)
	}
	if msg.Event != EventExperimentUpdate || msg.Data != "ping" {
		t.Errorf("message = %+v, want experiment-update ping", msg)
	}
}

func TestHandler_UnregistersOnClose(t *testing.T) {
	h := NewHub(4, testLogger())
	srv := httptest.NewServer(Handler(h, testLogger()))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() unexpected error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	_ = conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for h.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d after close, want 0", h.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
