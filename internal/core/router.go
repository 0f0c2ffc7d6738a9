package core

import "github.com/rs/zerolog"

// Router is the message-dispatch core. It applies validated client
// commands to the store and pushes results to the right connections via
// the registry. Every failure here is recovered locally: the dispatch
// loop and the connection both keep going.
type Router struct {
	registry *Registry
	store    *MessageStore
	log      *zerolog.Logger
}

// NewRouter builds a router over the shared registry and store.
func NewRouter(registry *Registry, store *MessageStore, logger *zerolog.Logger) *Router {
	return &Router{registry: registry, store: store, log: logger}
}

// Dispatch applies one command on behalf of the sending connection.
// The switch is exhaustive over the closed command set.
func (r *Router) Dispatch(sender *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandSendMessage:
		r.handleSendMessage(sender, cmd.Message)
	case CommandRequestHistory:
		r.handleHistory(sender, cmd.Me, cmd.TargetUser)
	}
}

// handleSendMessage appends the message, then pushes the full updated
// conversation to the sender and, if connected, to the recipient. An
// offline recipient is fire-and-drop: no error, no queueing; the
// message stays in the store and shows up in later history requests.
func (r *Router) handleSendMessage(sender *Client, msg Message) {
	r.store.Append(msg)

	ev := &Event{
		Kind:     EventConversation,
		Messages: r.store.Conversation(msg.From, msg.To),
	}

	if err := sender.Deliver(ev); err != nil {
		r.log.Warn().
			Err(err).
			Str("code", ErrCodeSendFailure).
			Str("conn_id", sender.ID).
			Str("username", sender.Username).
			Msg("sender echo failed")
	}

	recipient, ok := r.registry.Lookup(msg.To)
	if !ok {
		r.log.Debug().
			Str("from", msg.From).
			Str("to", msg.To).
			Msg("recipient offline, live delivery dropped")
		return
	}

	// The sender's echo already succeeded; a dead recipient handle must
	// not abort it or the dispatch loop.
	if err := recipient.Deliver(ev); err != nil {
		r.log.Warn().
			Err(err).
			Str("code", ErrCodeSendFailure).
			Str("conn_id", recipient.ID).
			Str("username", recipient.Username).
			Msg("recipient delivery failed")
	}
}

// handleHistory pushes the conversation between me and targetUser to
// the requesting connection only. Pure read.
func (r *Router) handleHistory(sender *Client, me, targetUser string) {
	ev := &Event{
		Kind:     EventHistory,
		Messages: r.store.Conversation(me, targetUser),
	}
	if err := sender.Deliver(ev); err != nil {
		r.log.Warn().
			Err(err).
			Str("code", ErrCodeSendFailure).
			Str("conn_id", sender.ID).
			Str("username", sender.Username).
			Msg("history delivery failed")
	}
}
