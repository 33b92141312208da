// Package events publishes inventory changes after they have been committed. Delivery is
// best effort: a failed publish is logged by the caller and never undoes the change.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	BookingConfirmed Type = "booking.confirmed"
	BookingCancelled Type = "booking.cancelled"
	SeatsBlocked     Type = "seats.blocked"
	SeatsUnblocked   Type = "seats.unblocked"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	ShowID     int       `json:"show_id"`
	BookingID  int       `json:"booking_id,omitempty"`
	UserID     int       `json:"user_id,omitempty"`
	Seats      []string  `json:"seats"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(t Type, showID int, seats []string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		ShowID:     showID,
		Seats:      seats,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "event",
		"id", event.ID,
		"type", event.Type,
		"show_id", event.ShowID,
		"booking_id", event.BookingID,
		"seats", event.Seats)

	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
