// Package entities contains core business entities.
package entities

// Notification outcome labels.
const (
	MessageSuccess = "success"
	MessageError   = "error"
)

// SlackMessageResult describes the outcome of one notification attempt.
// It is transient and never persisted.
type SlackMessageResult struct {
	Status    string
	Message   string
	Timestamp string
	Channel   string
}

// OK reports whether the notification was delivered.
func (r SlackMessageResult) OK() bool {
	return r.Status == MessageSuccess
}
