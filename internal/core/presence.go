package core

import "github.com/rs/zerolog"

// PresenceBroadcaster pushes the full connected-username list to every
// live connection whenever the registry changes.
type PresenceBroadcaster struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewPresenceBroadcaster builds a broadcaster over the given registry.
func NewPresenceBroadcaster(registry *Registry, logger *zerolog.Logger) *PresenceBroadcaster {
	return &PresenceBroadcaster{registry: registry, log: logger}
}

// Broadcast snapshots the registry and delivers the presence list to
// every registered connection. A failed send to one stale handle never
// prevents delivery to the rest.
func (b *PresenceBroadcaster) Broadcast() {
	users, clients := b.registry.view()
	ev := &Event{Kind: EventPresence, UserList: users}
	for _, c := range clients {
		if err := c.Deliver(ev); err != nil {
			b.log.Warn().
				Err(err).
				Str("code", ErrCodeSendFailure).
				Str("conn_id", c.ID).
				Str("username", c.Username).
				Msg("presence delivery failed")
		}
	}
}
