package hub

// HubError is returned by handle and router operations.
type HubError struct {
	Code    string
	Message string
}

func (e *HubError) Error() string {
	return e.Message
}

var (
	ErrSendBufferFull = &HubError{Code: "SEND_BUFFER_FULL", Message: "send buffer full"}
	ErrConnClosed     = &HubError{Code: "CONN_CLOSED", Message: "connection closed"}
)
