package core

import (
	"sync"
	"sync/atomic"
)

// ConnState is the lifecycle state of a connection.
type ConnState int32

const (
	// StateConnecting is the initial state before the hub admits the connection.
	StateConnecting ConnState = iota
	// StateOpen means the connection is registered and serving events.
	StateOpen
	// StateClosing means a close was requested; deregistration is in progress.
	StateClosing
	// StateClosed is terminal.
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

const defaultSendBuffer = 8

// Client is one live connection as the core sees it. The username is
// bound at construction and immutable for the connection's lifetime.
// Events is drained by the transport's write loop; Deliver never blocks.
type Client struct {
	ID       string
	Username string
	Events   chan *Event

	state   atomic.Int32
	alive   func() bool
	release sync.Once
}

// NewClient constructs a client in the connecting state. A buffer of
// zero or less uses the default outbound buffer size.
func NewClient(id, username string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &Client{
		ID:       id,
		Username: username,
		Events:   make(chan *Event, buffer),
	}
}

// State returns the current lifecycle state.
func (c *Client) State() ConnState {
	return ConnState(c.state.Load())
}

// SetAliveProbe installs a transport liveness check used by the hub's
// sweep. Must be called before the client is admitted.
func (c *Client) SetAliveProbe(probe func() bool) {
	c.alive = probe
}

// Alive reports whether the underlying transport still looks usable.
// Without a probe, liveness is inferred from the lifecycle state alone.
func (c *Client) Alive() bool {
	switch c.State() {
	case StateClosing, StateClosed:
		return false
	}
	if c.alive == nil {
		return true
	}
	return c.alive()
}

// Deliver enqueues an event for the client's write loop. Delivery is
// fire-and-forget: a closed client or a full buffer drops the event and
// reports why, without blocking the caller.
func (c *Client) Deliver(ev *Event) error {
	switch c.State() {
	case StateClosing, StateClosed:
		return ErrClientClosed
	}
	select {
	case c.Events <- ev:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) open() bool {
	return c.state.CompareAndSwap(int32(StateConnecting), int32(StateOpen))
}

func (c *Client) beginClose() {
	c.state.CompareAndSwap(int32(StateConnecting), int32(StateClosing))
	c.state.CompareAndSwap(int32(StateOpen), int32(StateClosing))
}

func (c *Client) finishClose() {
	c.state.Store(int32(StateClosed))
}
