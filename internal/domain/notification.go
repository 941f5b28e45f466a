package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind describes what happened to a client's session or request
type NotificationKind string

const (
	NotificationApproved    NotificationKind = "approved"
	NotificationDeclined    NotificationKind = "declined"
	NotificationCancelled   NotificationKind = "cancelled"
	NotificationRescheduled NotificationKind = "rescheduled"
)

// Notification is a fire-and-forget event for the client
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Kind      NotificationKind `json:"kind"`
	TrainerID int64            `json:"trainerId"`
	ClientID  int64            `json:"clientId"`
	SessionID *int64           `json:"sessionId,omitempty"`
	RequestID *int64           `json:"requestId,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewNotification creates an event with a fresh id
func NewNotification(kind NotificationKind, trainerID, clientID int64, message string, now time.Time) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Kind:      kind,
		TrainerID: trainerID,
		ClientID:  clientID,
		Message:   message,
		CreatedAt: now,
	}
}
