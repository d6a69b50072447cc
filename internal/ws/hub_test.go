package ws

import (
	"encoding/json"
	"testing"
)

func TestHubNotifyDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub()
	c := &Client{ProfileID: 1, Send: make(chan []byte, 4), hub: hub}
	hub.register(c)

	hub.Notify(1, "mission_approved", map[string]any{"reward": 15})

	select {
	case msg := <-c.Send:
		var frame struct {
			Type    string         `json:"type"`
			Payload map[string]any `json:"payload"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if frame.Type != "mission_approved" {
			t.Errorf("type = %s", frame.Type)
		}
		if frame.Payload["reward"].(float64) != 15 {
			t.Errorf("payload = %v", frame.Payload)
		}
	default:
		t.Fatal("no message delivered")
	}
}

func TestHubNotifyOtherProfileGetsNothing(t *testing.T) {
	hub := NewHub()
	c := &Client{ProfileID: 1, Send: make(chan []byte, 4), hub: hub}
	hub.register(c)

	hub.Notify(2, "wheel_prize", nil)

	select {
	case <-c.Send:
		t.Fatal("message delivered to wrong profile")
	default:
	}
}

func TestHubNotifyNeverBlocksOnFullClient(t *testing.T) {
	hub := NewHub()
	c := &Client{ProfileID: 1, Send: make(chan []byte, 1), hub: hub}
	hub.register(c)

	// fill the buffer, then notify twice more; the call must return
	hub.Notify(1, "a", nil)
	hub.Notify(1, "b", nil)
	hub.Notify(1, "c", nil)

	if got := hub.Connected(1); got != 1 {
		t.Errorf("connected = %d", got)
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	c := &Client{ProfileID: 1, Send: make(chan []byte, 1), hub: hub}
	hub.register(c)
	hub.unregister(c)

	if got := hub.Connected(1); got != 0 {
		t.Errorf("connected = %d after unregister", got)
	}

	// unregistering twice is harmless
	hub.unregister(c)
}
