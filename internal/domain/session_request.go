package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// RequestStatus represents the state of a client's session request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDeclined RequestStatus = "declined"
)

// SessionRequest is a client's request for a session. It is resolved exactly once.
type SessionRequest struct {
	ID             int64
	TrainerID      int64
	ClientID       int64
	RequestedDate  time.Time
	RequestedStart types.TimeString
	RequestedEnd   types.TimeString
	Status         RequestStatus
	Message        string

	DeclineReason *string
	SessionID     *int64 // session produced by approval

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request has not been resolved yet
func (r *SessionRequest) IsPending() bool {
	return r.Status == RequestPending
}

// Interval returns the requested time bounds.
func (r *SessionRequest) Interval() TimeInterval {
	return TimeInterval{Start: r.RequestedStart, End: r.RequestedEnd}
}

// ParseRequestStatus validates a status string
func ParseRequestStatus(s string) (RequestStatus, bool) {
	status := RequestStatus(s)
	switch status {
	case RequestPending, RequestApproved, RequestDeclined:
		return status, true
	}
	return "", false
}
