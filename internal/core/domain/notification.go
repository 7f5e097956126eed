package domain

import "time"

// Notification is an in-app notification record. It is immutable once
// created except for the Read flag, which the recipient flips through the
// query API.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailJob is one unit of durable, retryable outbound email work. Attempts
// is the total number of delivery tries the broker may make; once spent the
// job is terminal and surfaced as exhausted, never silently dropped.
type EmailJob struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Text     string `json:"text"`
	Attempts int    `json:"attempts"`
}
