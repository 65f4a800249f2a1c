package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEnvelopeSerialization(t *testing.T) {
	data := &SynthesisCompletedData{
		Language:    "ht",
		Voice:       "marie",
		TextLength:  6,
		AudioBytes:  44144,
		DurationSec: 1.0,
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}

	env := Envelope{
		ID:        "test-id",
		Type:      SynthesisCompleted,
		Source:    "text-to-speech-service",
		Timestamp: time.Now().UTC(),
		Data:      raw,
	}

	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	var decoded Envelope
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	if decoded.Type != SynthesisCompleted {
		t.Errorf("type = %q, want %q", decoded.Type, SynthesisCompleted)
	}
	if decoded.Source != "text-to-speech-service" {
		t.Errorf("source = %q, want %q", decoded.Source, "text-to-speech-service")
	}

	var payload SynthesisCompletedData
	if err := json.Unmarshal(decoded.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Voice != "marie" {
		t.Errorf("voice = %q, want %q", payload.Voice, "marie")
	}
	if payload.AudioBytes != 44144 {
		t.Errorf("audio_bytes = %d, want %d", payload.AudioBytes, 44144)
	}
}

func TestEventTypeConstants(t *testing.T) {
	types := []EventType{
		SynthesisCompleted, SynthesisFailed,
		BatchCompleted, PreviewServed, CatalogueReloaded,
	}

	seen := make(map[EventType]bool)
	for _, et := range types {
		if et == "" {
			t.Error("empty event type constant")
		}
		if seen[et] {
			t.Errorf("duplicate event type: %q", et)
		}
		seen[et] = true
	}
}

func TestLocalSubscription(t *testing.T) {
	pub := NewPublisher(nil, "test", "events")
	ch := pub.Subscribe("listener", 4)
	defer pub.Unsubscribe("listener")

	err := pub.Emit(context.Background(), BatchCompleted, BatchCompletedData{
		BatchID:    "b-1",
		TotalFiles: 3,
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	select {
	case env := <-ch:
		if env.Type != BatchCompleted {
			t.Errorf("type = %q, want %q", env.Type, BatchCompleted)
		}
		if env.ID == "" {
			t.Error("expected envelope ID to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for local event")
	}
}
