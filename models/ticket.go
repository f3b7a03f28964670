package models

// Ticket is the slice of the helpdesk ticket we keep locally: enough to
// build the response and the user-facing ticket URL.
type Ticket struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
}

// EmailStatus classifies the outcome of the confirmation email step. It
// never changes the overall response status.
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailPending EmailStatus = "pending"
	EmailFailed  EmailStatus = "failed"
	EmailSkipped EmailStatus = "skipped"
)
