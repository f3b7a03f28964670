package common

// StatusError carries an HTTP-equivalent status next to a user-facing
// message, so handlers can map downstream failures onto the response
// without masking them.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NewStatusError(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}
