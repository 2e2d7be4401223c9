package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshmart/supermarket-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserOnboarded  EventType = "user_onboarded"
	EventStoreCreated   EventType = "store_created"
	EventProductCreated EventType = "product_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a fresh event with id and timestamp.
func NewEvent(eventType EventType, subject string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// UserOnboardedPayload payload. Provider denotes the external identity
// source; Created reports whether a new local account was provisioned.
type UserOnboardedPayload struct {
	UserID   int64       `json:"user_id"`
	Provider string      `json:"provider"`
	Role     domain.Role `json:"role"`
	Created  bool        `json:"created"`
}

// StoreCreatedPayload payload.
type StoreCreatedPayload struct {
	StoreID   int64  `json:"store_id"`
	Name      string `json:"name"`
	ManagerID int64  `json:"manager_id"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	ProductID int64                  `json:"product_id"`
	Name      string                 `json:"name"`
	Category  domain.ProductCategory `json:"category"`
	StoreID   int64                  `json:"store_id"`
}
