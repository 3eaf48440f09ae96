package hub

import (
	"encoding/json"
	"testing"
	"time"
)

// stalledClient registers a subscriber whose send buffer is already full,
// so the next broadcast must drop it.
func stalledClient(h *Hub) *Client {
	c := &Client{hub: h, send: make(chan []byte)}
	h.register <- c
	return c
}

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.SubscriberCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Expected %d subscribers, got %d", want, h.SubscriberCount())
}

func TestPublishEncodesEnvelope(t *testing.T) {
	h := New("test")
	go h.Run()

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- c
	waitForCount(t, h, 1)

	if err := h.Publish(TypeMood, map[string]float64{"pleasure": 0.5}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case payload := <-c.send:
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if env.Type != TypeMood {
			t.Errorf("Expected type %q, got %q", TypeMood, env.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast never reached the subscriber")
	}
}

func TestSlowSubscriberDropped(t *testing.T) {
	h := New("test")
	go h.Run()

	stalledClient(h)
	waitForCount(t, h, 1)

	h.Publish(TypeFrame, "frame")
	waitForCount(t, h, 0)
}

// Counting subscribers while broadcasts are dropping a slow client must
// not tear the client map; run with -race.
func TestSubscriberCountDuringDrops(t *testing.T) {
	h := New("test")
	go h.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			stalledClient(h)
			h.Publish(TypeFrame, i)
		}
	}()

	for {
		select {
		case <-done:
			// A client registered after the last broadcast lingers until
			// another publish drops it; keep flushing while we wait.
			deadline := time.Now().Add(2 * time.Second)
			for h.SubscriberCount() != 0 {
				if time.Now().After(deadline) {
					t.Fatalf("Expected all subscribers dropped, got %d", h.SubscriberCount())
				}
				h.Publish(TypeFrame, "flush")
				time.Sleep(time.Millisecond)
			}
			return
		default:
			h.SubscriberCount()
		}
	}
}
