package events

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of event flowing through the system.
type EventType string

const (
	SynthesisCompleted EventType = "synthesis.completed"
	SynthesisFailed    EventType = "synthesis.failed"
	BatchCompleted     EventType = "batch.completed"
	PreviewServed      EventType = "preview.served"
	CatalogueReloaded  EventType = "catalogue.reloaded"
)

// Envelope is the standard event wrapper published to the event queue.
type Envelope struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Source    string            `json:"source"`
	Timestamp time.Time         `json:"timestamp"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// SynthesisCompletedData is the payload for synthesis.completed events.
type SynthesisCompletedData struct {
	Language    string  `json:"language"`
	Voice       string  `json:"voice"`
	TextLength  int     `json:"text_length"`
	AudioBytes  int     `json:"audio_bytes"`
	DurationSec float64 `json:"duration_sec"`
}

// SynthesisFailedData is the payload for synthesis.failed events.
type SynthesisFailedData struct {
	Language string `json:"language"`
	Voice    string `json:"voice"`
	Reason   string `json:"reason"`
}

// BatchCompletedData is the payload for batch.completed events.
type BatchCompletedData struct {
	BatchID    string `json:"batch_id"`
	TotalFiles int    `json:"total_files"`
	Failed     int    `json:"failed"`
}

// PreviewServedData is the payload for preview.served events.
type PreviewServedData struct {
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

// CatalogueReloadedData is the payload for catalogue.reloaded events.
type CatalogueReloadedData struct {
	Path   string `json:"path"`
	Voices int    `json:"voices"`
}
