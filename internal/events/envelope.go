package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps a shop event for the wire.
type Envelope struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope marshals data into a typed, timestamped envelope.
func NewEnvelope(eventType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}
