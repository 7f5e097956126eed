package domain

import "time"

// Domain event names. These are the only events the bus carries; each has a
// typed payload below.
const (
	EventUserRegistered  = "userRegistered"
	EventEmailUpdated    = "emailUpdate"
	EventPasswordUpdated = "passwordUpdate"
	EventTaskAssigned    = "assignedTask"
)

// UserEventPayload accompanies userRegistered, emailUpdate and
// passwordUpdate.
type UserEventPayload struct {
	Username string
	Email    string
}

// TaskAssignedPayload accompanies assignedTask. Username and Email identify
// the assignee.
type TaskAssignedPayload struct {
	Username string
	Email    string
	Title    string
	DueDate  time.Time
}
