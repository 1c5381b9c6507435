package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types published after a successful write.
const (
	EventCafeCreated = "cafe.created"
	EventCafeUpdated = "cafe.updated"
	EventCafeDeleted = "cafe.deleted"
)

// EventPublisher sends an encoded event to a message broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// CafeEvent is the message body of every cafe event.
type CafeEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	CafeID     uint      `json:"cafe_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// publish sends an event if a publisher is configured. The write it
// reports has already been committed, so failures are only logged.
func (s *CafeService) publish(eventType string, cafeID uint, name string) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(CafeEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		CafeID:     cafeID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		zap.S().Errorw("Failed to marshal cafe event", "type", eventType, "cafe_id", cafeID, "error", err)
		return
	}

	if err := s.publisher.Publish(eventType, body); err != nil {
		zap.S().Warnw("Failed to publish cafe event", "type", eventType, "cafe_id", cafeID, "error", err)
		return
	}
	zap.S().Debugw("Published cafe event", "type", eventType, "cafe_id", cafeID)
}
