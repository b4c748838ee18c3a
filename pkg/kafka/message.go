package kafka

import (
	"time"

	"github.com/google/uuid"
)

// Header keys shared by every event this system publishes.
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSource        = "source"
)

type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// NewMessage builds a message with the standard header set populated.
func NewMessage(key string, value []byte, eventType, correlationID, source string) Message {
	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:       uuid.New().String(),
			HeaderEventType:     eventType,
			HeaderCorrelationID: correlationID,
			HeaderSource:        source,
		},
		Timestamp: time.Now(),
	}
}
