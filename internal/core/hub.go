package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultSweepInterval = time.Second

// Hub owns the connection lifecycle: it admits authenticated
// connections into the registry, routes their commands, releases them
// exactly once on close, and periodically sweeps out connections whose
// transport died without an observable close event.
type Hub struct {
	registry *Registry
	store    *MessageStore
	router   *Router
	presence *PresenceBroadcaster

	sweepEvery time.Duration
	log        *zerolog.Logger
}

// NewHub constructs a hub with its own registry, router, and presence
// broadcaster over the given store. A sweep interval of zero or less
// uses the default of one second.
func NewHub(store *MessageStore, sweepEvery time.Duration, logger *zerolog.Logger) *Hub {
	if sweepEvery <= 0 {
		sweepEvery = defaultSweepInterval
	}
	registry := NewRegistry()
	return &Hub{
		registry:   registry,
		store:      store,
		router:     NewRouter(registry, store, logger),
		presence:   NewPresenceBroadcaster(registry, logger),
		sweepEvery: sweepEvery,
		log:        logger,
	}
}

// Registry exposes the live connection registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Admit moves a connecting client to open, registers it, and fires a
// presence broadcast. Admitting a client twice, or one that already
// started closing, is an error and mutates nothing.
func (h *Hub) Admit(c *Client) error {
	if !c.open() {
		return ErrClientClosed
	}
	h.registry.Register(c.Username, c)
	h.log.Info().
		Str("conn_id", c.ID).
		Str("username", c.Username).
		Msg("connection admitted")
	h.presence.Broadcast()
	return nil
}

// Release tears a connection down: open -> closing -> closed, with the
// registry entry removed exactly once and a presence broadcast after.
// Safe to call from the transport's defer and the sweep concurrently.
func (h *Hub) Release(c *Client) {
	c.release.Do(func() {
		c.beginClose()
		h.registry.Remove(c)
		c.finishClose()
		h.log.Info().
			Str("conn_id", c.ID).
			Str("username", c.Username).
			Msg("connection released")
		h.presence.Broadcast()
	})
}

// Dispatch routes one decoded command from a connection.
func (h *Hub) Dispatch(c *Client, cmd *Command) {
	h.router.Dispatch(c, cmd)
}

// Run drives the periodic liveness sweep until the context is
// cancelled. Run in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep()
		}
	}
}

// sweep force-closes registered connections whose transport reports
// dead. A safety net for handles that close without emitting a close
// event; normal teardown goes through the transport's own Release.
func (h *Hub) sweep() {
	for _, c := range h.registry.Clients() {
		if c.Alive() {
			continue
		}
		h.log.Warn().
			Str("code", ErrCodeStaleConn).
			Str("conn_id", c.ID).
			Str("username", c.Username).
			Msg("evicting stale connection")
		h.Release(c)
	}
}
