package core

import "errors"

// Error codes for recoverable per-event failures. These are reported in
// logs only; none of them terminate the connection or the process.
const (
	ErrCodeUnknownEvent   = "unknown_event"
	ErrCodeMalformedEvent = "malformed_event"
	ErrCodeSendFailure    = "send_failure"
	ErrCodeStaleConn      = "stale_connection"
)

var (
	// ErrUnknownEvent is returned when an inbound event name is not one
	// of the recognized kinds. The event is dropped; the connection stays open.
	ErrUnknownEvent = errors.New("unknown event kind")
	// ErrMalformedEvent is returned when a required payload field is
	// missing or has the wrong shape. The event is dropped; the connection stays open.
	ErrMalformedEvent = errors.New("malformed event payload")
	// ErrClientClosed is returned by Deliver when the target connection
	// has already left the open state.
	ErrClientClosed = errors.New("client closed")
	// ErrSendBufferFull is returned by Deliver when the outbound buffer
	// is full. Delivery is best-effort; the event is dropped for that client.
	ErrSendBufferFull = errors.New("send buffer full")
)
